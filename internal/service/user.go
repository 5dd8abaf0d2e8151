package service

import (
	"errors"
	"io"
	"net/http"

	"Lyra_Tube/internal/model"
	"Lyra_Tube/internal/repository"
	"Lyra_Tube/pkg/apierr"
	"Lyra_Tube/pkg/config"
	"Lyra_Tube/pkg/logger"
	"Lyra_Tube/pkg/storage"

	mysqldriver "github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 用户服务接口：注册、登录、登出、刷新令牌、改密码，外加用户侧的几个读模型
type UserService interface {
	Register(username, email, password string, profileImage io.Reader, filename string) (*model.User, error)
	Login(email, password string) (*model.User, string, string, error)
	Logout(userID uint64) error
	// RefreshTokens 用刷新令牌换一对新令牌（轮换：旧的刷新令牌作废）
	RefreshTokens(incomingToken string) (string, string, error)
	ChangePassword(userID uint64, oldPassword, newPassword string) error
	GetUser(userID uint64) (*model.User, error)
	UpdateAccountDetails(userID uint64, username, email string) (*model.User, error)
	UpdateProfileImage(userID uint64, file io.Reader, filename string) (string, error)

	GetChannelProfile(username string, viewerID uint64) (*repository.ChannelProfileRow, error)
	GetWatchHistory(userID uint64) ([]repository.WatchHistoryRow, error)
}

type userService struct {
	userRepo  repository.UserRepository
	blobStore storage.BlobStore
}

func NewUserService(userRepo repository.UserRepository, blobStore storage.BlobStore) UserService {
	return &userService{userRepo: userRepo, blobStore: blobStore}
}

// issueTokenPair 一次签发访问+刷新两个令牌。签名失败只可能是秘钥配置问题，统一报"令牌生成失败"
func (s *userService) issueTokenPair(user *model.User) (string, string, error) {
	accessToken, err := GenerateAccessToken(user, config.AccessTokenTTL)
	if err != nil {
		return "", "", apierr.New(http.StatusBadRequest, "令牌生成失败")
	}
	refreshToken, err := GenerateRefreshToken(user, config.RefreshTokenTTL)
	if err != nil {
		return "", "", apierr.New(http.StatusBadRequest, "令牌生成失败")
	}
	return accessToken, refreshToken, nil
}

// 注册逻辑：1、检查邮箱和用户名是否已被占用 2、密码加密存储 3、头像（可选）传对象存储 4、插入用户表
func (s *userService) Register(username, email, password string, profileImage io.Reader, filename string) (*model.User, error) {
	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, apierr.New(http.StatusBadRequest, "该邮箱已被注册")
	}
	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, apierr.New(http.StatusBadRequest, "用户名已存在")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	newUser := &model.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
	}

	if profileImage != nil {
		uploaded, err := s.blobStore.Upload(profileImage, filename)
		if err != nil {
			logger.Log.WithError(err).Error("注册时头像上传失败")
			return nil, apierr.New(http.StatusBadRequest, "头像上传失败")
		}
		newUser.ProfileImageURL = uploaded.URL
		newUser.ProfileImageKey = uploaded.Key
	}

	if err := s.userRepo.Create(newUser); err != nil {
		// 前面的查重是两步走，并发注册仍可能撞到唯一索引，这里兜住映射成业务错误
		var mysqlErr *mysqldriver.MySQLError
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			(errors.As(err, &mysqlErr) && mysqlErr.Number == 1062) {
			return nil, apierr.New(http.StatusBadRequest, "该邮箱或用户名已被注册")
		}
		return nil, err
	}
	return newUser, nil
}

// 登录逻辑：1、按邮箱找用户 2、bcrypt比对密码 3、签发令牌对 4、刷新令牌落库（单槽位覆盖）
func (s *userService) Login(email, password string) (*model.User, string, string, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", apierr.New(http.StatusBadRequest, "用户不存在")
		}
		return nil, "", "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", "", apierr.New(http.StatusBadRequest, "密码错误")
	}

	accessToken, refreshToken, err := s.issueTokenPair(user)
	if err != nil {
		return nil, "", "", err
	}

	if err := s.userRepo.UpdateRefreshToken(user.ID, refreshToken); err != nil {
		return nil, "", "", err
	}

	return user, accessToken, refreshToken, nil
}

// 登出：清掉服务端存的刷新令牌，cookie由handler层清
func (s *userService) Logout(userID uint64) error {
	return s.userRepo.UpdateRefreshToken(userID, "")
}

// 刷新令牌：1、验证签名和有效期 2、按其中的id找用户 3、与库里存的那份比对（轮换后的旧令牌直接作废）
// 4、签发并落库新令牌对
func (s *userService) RefreshTokens(incomingToken string) (string, string, error) {
	userID, err := ParseRefreshToken(incomingToken)
	if err != nil {
		return "", "", apierr.New(http.StatusUnauthorized, "无效的刷新令牌")
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return "", "", apierr.New(http.StatusUnauthorized, "无效的刷新令牌")
	}

	// 单槽位：只认当前存着的那一份，旧令牌换新后立即失效
	if user.RefreshToken == "" || user.RefreshToken != incomingToken {
		return "", "", apierr.New(http.StatusUnauthorized, "刷新令牌已失效")
	}

	accessToken, refreshToken, err := s.issueTokenPair(user)
	if err != nil {
		return "", "", err
	}

	if err := s.userRepo.UpdateRefreshToken(user.ID, refreshToken); err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// 改密码：旧==新 / 缺字段 / 旧密码不对，都拒绝；通过后重新哈希落库
func (s *userService) ChangePassword(userID uint64, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return apierr.New(http.StatusBadRequest, "新旧密码都不能为空")
	}
	if oldPassword == newPassword {
		return apierr.New(http.StatusBadRequest, "新密码不能与旧密码相同")
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return apierr.New(http.StatusNotFound, "用户不存在")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return apierr.New(http.StatusBadRequest, "旧密码错误")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(userID, string(hashedPassword))
}

func (s *userService) GetUser(userID uint64) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.New(http.StatusNotFound, "用户不存在")
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateAccountDetails(userID uint64, username, email string) (*model.User, error) {
	if username == "" && email == "" {
		return nil, apierr.New(http.StatusBadRequest, "没有需要更新的字段")
	}
	return s.userRepo.UpdateAccountDetails(userID, username, email)
}

// 换头像：1、传新图（新key） 2、落库 3、尽力删掉旧的对象，删失败只记日志不影响主流程
func (s *userService) UpdateProfileImage(userID uint64, file io.Reader, filename string) (string, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return "", apierr.New(http.StatusNotFound, "用户不存在")
	}

	uploaded, err := s.blobStore.Upload(file, filename)
	if err != nil {
		logger.Log.WithError(err).Error("头像上传失败")
		return "", apierr.New(http.StatusBadRequest, "头像上传失败")
	}

	if err := s.userRepo.UpdateProfileImage(userID, uploaded.URL, uploaded.Key); err != nil {
		return "", err
	}

	if user.ProfileImageKey != "" {
		if err := s.blobStore.Delete(user.ProfileImageKey); err != nil {
			logger.Log.WithError(err).WithField("key", user.ProfileImageKey).Warn("旧头像删除失败，遗留孤儿对象")
		}
	}
	return uploaded.URL, nil
}

func (s *userService) GetChannelProfile(username string, viewerID uint64) (*repository.ChannelProfileRow, error) {
	row, err := s.userRepo.GetChannelProfile(username, viewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.New(http.StatusNotFound, "频道不存在")
		}
		return nil, err
	}
	return row, nil
}

func (s *userService) GetWatchHistory(userID uint64) ([]repository.WatchHistoryRow, error) {
	return s.userRepo.GetWatchHistory(userID)
}
