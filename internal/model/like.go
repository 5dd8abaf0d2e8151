package model

// 点赞目标的三种类型，一行记录只指向其中一种
const (
	LikeTargetVideo   = "video"
	LikeTargetComment = "comment"
	LikeTargetTweet   = "tweet"
)

// 点赞是多态关系：同一张表同时服务视频、评论、推文，用 target_kind + target_id 标记目标，
// 而不是三个可空外键。uniqueIndex利用MySQL的"自动查重"能力保证一个用户对一个目标只能点赞一次
type Like struct {
	BaseModel
	UserID     uint64 `gorm:"uniqueIndex:idx_user_target"`
	TargetKind string `gorm:"size:16;uniqueIndex:idx_user_target"`
	TargetID   uint64 `gorm:"uniqueIndex:idx_user_target"`
}

// 想精确控制表名，就必须实现TableName()方法
func (Like) TableName() string {
	return "likes"
}
