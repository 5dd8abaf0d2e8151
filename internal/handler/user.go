package handler

import (
	"mime/multipart"
	"net/http"

	"Lyra_Tube/internal/dto"
	"Lyra_Tube/internal/service"
	"Lyra_Tube/pkg/config"
	"Lyra_Tube/pkg/logger"

	"github.com/gin-gonic/gin"
)

type UserHandler interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Logout(c *gin.Context)
	RefreshToken(c *gin.Context)
	ChangePassword(c *gin.Context)
	GetCurrentUser(c *gin.Context)
	UpdateAccount(c *gin.Context)
	UpdateProfileImage(c *gin.Context)
	GetChannelProfile(c *gin.Context)
	GetWatchHistory(c *gin.Context)
}

type userHandler struct {
	UserService service.UserService
}

func NewUserHandler(userService service.UserService) UserHandler {
	return &userHandler{UserService: userService}
}

// setAuthCookies 把令牌对写进httpOnly cookie，浏览器端走cookie、其他客户端走响应体
func setAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("accessToken", accessToken, int(config.AccessTokenTTL.Seconds()), "/", "", false, true)
	c.SetCookie("refreshToken", refreshToken, int(config.RefreshTokenTTL.Seconds()), "/", "", false, true)
}

func clearAuthCookies(c *gin.Context) {
	c.SetCookie("accessToken", "", -1, "/", "", false, true)
	c.SetCookie("refreshToken", "", -1, "/", "", false, true)
}

// openOptionalFile 取multipart表单里的可选文件，没传返回nil
func openOptionalFile(c *gin.Context, field string) (multipart.File, string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, "", nil
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", err
	}
	return file, fileHeader.Filename, nil
}

// 注册：1、解析multipart表单（头像可选） 2、service层完成查重、加密、上传、入库 3、dto过滤敏感字段后返回
func (h *userHandler) Register(c *gin.Context) {
	var req struct {
		Username string `form:"username" binding:"required"`
		Email    string `form:"email" binding:"required,email"`
		Password string `form:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBind(&req); err != nil {
		logger.Log.WithError(err).Error("注册参数解析失败")
		sendErrorResponse(c, http.StatusUnprocessableEntity, "无效的参数", err.Error())
		return
	}

	profileImage, filename, err := openOptionalFile(c, "profile_image")
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "头像文件读取失败")
		return
	}
	if profileImage != nil {
		defer profileImage.Close()
	}

	logCtx := logger.Log.WithField("username", req.Username)
	logCtx.Info("开始处理注册请求")

	user, err := h.UserService.Register(req.Username, req.Email, req.Password, profileImage, filename)
	if err != nil {
		logCtx.WithError(err).Warn("注册失败")
		handleServiceError(c, err)
		return
	}

	logCtx.WithField("user_id", user.ID).Info("注册成功")
	sendSuccessResponse(c, http.StatusCreated, dto.ToUserResponse(user), "注册成功")
}

// 登录：1、解析JSON 2、service层校验并签发令牌对 3、令牌对同时写cookie和响应体
func (h *userHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusUnprocessableEntity, "无效的参数", err.Error())
		return
	}

	logCtx := logger.Log.WithField("email", req.Email)
	logCtx.Info("开始处理登录请求")

	user, accessToken, refreshToken, err := h.UserService.Login(req.Email, req.Password)
	if err != nil {
		logCtx.WithError(err).Warn("登录失败")
		handleServiceError(c, err)
		return
	}

	setAuthCookies(c, accessToken, refreshToken)
	logCtx.WithField("user_id", user.ID).Info("登录成功")

	response := dto.LoginResponse{
		User:         dto.ToUserResponse(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}
	sendSuccessResponse(c, http.StatusOK, response, "登录成功")
}

// 登出：清掉服务端的刷新令牌槽位，并让浏览器cookie过期
func (h *userHandler) Logout(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.UserService.Logout(userID); err != nil {
		handleServiceError(c, err)
		return
	}

	clearAuthCookies(c)
	sendSuccessResponse(c, http.StatusOK, nil, "登出成功")
}

// 刷新令牌：优先读cookie，没有再看JSON体；成功后轮换出一对新令牌
func (h *userHandler) RefreshToken(c *gin.Context) {
	incoming, err := c.Cookie("refreshToken")
	if err != nil || incoming == "" {
		var req struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
			sendErrorResponse(c, http.StatusUnauthorized, "请求未包含刷新令牌")
			return
		}
		incoming = req.RefreshToken
	}

	accessToken, refreshToken, err := h.UserService.RefreshTokens(incoming)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	setAuthCookies(c, accessToken, refreshToken)
	response := dto.TokenPairResponse{AccessToken: accessToken, RefreshToken: refreshToken}
	sendSuccessResponse(c, http.StatusOK, response, "令牌刷新成功")
}

func (h *userHandler) ChangePassword(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req struct {
		OldPassword string `json:"old_password" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusUnprocessableEntity, "无效的参数", err.Error())
		return
	}

	if err := h.UserService.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessResponse(c, http.StatusOK, nil, "密码修改成功")
}

// GetCurrentUser 当前登录用户的信息，数据来自数据库而不是token，保证拿到最新状态
func (h *userHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	user, err := h.UserService.GetUser(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessResponse(c, http.StatusOK, dto.ToUserResponse(user), "成功获取当前用户")
}

func (h *userHandler) UpdateAccount(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req struct {
		Username string `json:"username"`
		Email    string `json:"email" binding:"omitempty,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusUnprocessableEntity, "无效的参数", err.Error())
		return
	}

	user, err := h.UserService.UpdateAccountDetails(userID, req.Username, req.Email)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessResponse(c, http.StatusOK, dto.ToUserResponse(user), "账户信息更新成功")
}

func (h *userHandler) UpdateProfileImage(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("profile_image")
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "请求未包含头像文件")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "头像文件读取失败")
		return
	}
	defer file.Close()

	url, err := h.UserService.UpdateProfileImage(userID, file, fileHeader.Filename)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessResponse(c, http.StatusOK, gin.H{"profile_image_url": url}, "头像更新成功")
}

// GetChannelProfile 按用户名查频道主页，is_subscribed以当前登录用户视角计算
func (h *userHandler) GetChannelProfile(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		sendErrorResponse(c, http.StatusBadRequest, "无效的用户名")
		return
	}
	viewerID, ok := mustUserID(c)
	if !ok {
		return
	}

	row, err := h.UserService.GetChannelProfile(username, viewerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessResponse(c, http.StatusOK, dto.ToChannelProfileResponse(row), "成功获取频道信息")
}

func (h *userHandler) GetWatchHistory(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	rows, err := h.UserService.GetWatchHistory(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessResponse(c, http.StatusOK, dto.ToWatchHistoryResponses(rows), "成功获取观看历史")
}
