package router

import (
	"net/http"

	"Lyra_Tube/internal/handler"
	"Lyra_Tube/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRouter(
	userHandler handler.UserHandler,
	videoHandler handler.VideoHandler,
	commentHandler handler.CommentHandler,
	likeHandler handler.LikeHandler,
	subscriptionHandler handler.SubscriptionHandler,
	playlistHandler handler.PlaylistHandler,
	tweetHandler handler.TweetHandler,
	dashboardHandler handler.DashboardHandler,
) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.BodyLimitMiddleware())

	api := r.Group("/api")
	{
		api.GET("/healthcheck", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"statusCode": http.StatusOK,
				"data":       gin.H{"status": "ok"},
				"message":    "服务运行正常",
				"success":    true,
			})
		})

		users := api.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.POST("/refresh-token", userHandler.RefreshToken)

			authed := users.Group("/")
			authed.Use(middleware.AuthMiddleware())
			{
				authed.POST("/logout", userHandler.Logout)
				authed.POST("/change-password", userHandler.ChangePassword)
				authed.GET("/get-user", userHandler.GetCurrentUser)
				authed.PATCH("/update-account-details", userHandler.UpdateAccount)
				authed.PATCH("/update-profile-image", userHandler.UpdateProfileImage)
				authed.GET("/watch-history", userHandler.GetWatchHistory)
				authed.GET("/c/:username", userHandler.GetChannelProfile)
			}
		}

		videos := api.Group("/videos")
		videos.Use(middleware.AuthMiddleware())
		{
			videos.GET("/", videoHandler.GetFeed)
			videos.POST("/publish", videoHandler.PublishVideo)
			videos.GET("/:video_id", videoHandler.GetVideoDetail)
			videos.PATCH("/:video_id", videoHandler.UpdateVideo)
			videos.DELETE("/:video_id", videoHandler.DeleteVideo)
			videos.PATCH("/:video_id/toggle-publish", videoHandler.TogglePublish)
		}

		comments := api.Group("/comments")
		comments.Use(middleware.AuthMiddleware())
		{
			comments.POST("/video/:video_id", commentHandler.AddComment)
			comments.GET("/video/:video_id", commentHandler.GetVideoComments)
			comments.GET("/user", commentHandler.GetMyComments)
			comments.PATCH("/:comment_id", commentHandler.UpdateComment)
			comments.DELETE("/:comment_id", commentHandler.DeleteComment)
		}

		likes := api.Group("/likes")
		likes.Use(middleware.AuthMiddleware())
		{
			likes.PATCH("/video/:video_id", likeHandler.ToggleVideoLike)
			likes.PATCH("/comment/:comment_id", likeHandler.ToggleCommentLike)
			likes.PATCH("/tweet/:tweet_id", likeHandler.ToggleTweetLike)
			likes.GET("/video", likeHandler.GetLikedVideos)
			likes.GET("/comment", likeHandler.GetLikedComments)
			likes.GET("/tweet", likeHandler.GetLikedTweets)
		}

		subscriptions := api.Group("/subscription")
		subscriptions.Use(middleware.AuthMiddleware())
		{
			subscriptions.POST("/c/:channel_id", subscriptionHandler.ToggleSubscription)
			subscriptions.GET("/c/:channel_id", subscriptionHandler.GetChannelSubscribers)
			subscriptions.GET("/u/:subscriber_id", subscriptionHandler.GetSubscribedChannels)
		}

		playlists := api.Group("/playlist")
		playlists.Use(middleware.AuthMiddleware())
		{
			playlists.POST("/", playlistHandler.CreatePlaylist)
			playlists.GET("/", playlistHandler.GetUserPlaylists)
			playlists.GET("/:playlist_id", playlistHandler.GetPlaylistDetail)
			playlists.PATCH("/:playlist_id", playlistHandler.UpdatePlaylist)
			playlists.DELETE("/:playlist_id", playlistHandler.DeletePlaylist)
			playlists.POST("/:playlist_id/videos/:video_id", playlistHandler.AddVideo)
			playlists.DELETE("/:playlist_id/videos/:video_id", playlistHandler.RemoveVideo)
		}

		tweets := api.Group("/tweet")
		tweets.Use(middleware.AuthMiddleware())
		{
			tweets.POST("/", tweetHandler.CreateTweet)
			tweets.GET("/", tweetHandler.GetUserTweets)
			tweets.GET("/:tweet_id", tweetHandler.GetTweetDetail)
			tweets.PATCH("/:tweet_id", tweetHandler.UpdateTweet)
			tweets.DELETE("/:tweet_id", tweetHandler.DeleteTweet)
		}

		dashboard := api.Group("/dashboard")
		dashboard.Use(middleware.AuthMiddleware())
		{
			dashboard.GET("/stats", dashboardHandler.GetChannelStats)
			dashboard.GET("/videos", dashboardHandler.GetChannelVideos)
		}
	}

	return r
}
