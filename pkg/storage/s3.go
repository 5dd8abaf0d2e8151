package storage

import (
	"fmt"
	"io"
	"mime"
	"path/filepath"

	"Lyra_Tube/pkg/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
)

// UploadResult 是一次对象存储上传的产物：外链url + 存储key。
// 删除/覆盖文件时只能用key，所以两者要成对保存
type UploadResult struct {
	URL string
	Key string
}

// BlobStore 抽象对象存储，测试时可以换成内存假实现
type BlobStore interface {
	Upload(file io.Reader, filename string) (*UploadResult, error)
	Delete(key string) error
}

type s3Store struct {
	uploader *s3manager.Uploader
	client   *s3.S3
	bucket   string
}

func NewS3Store() (BlobStore, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(config.AWSRegion),
	})
	if err != nil {
		return nil, err
	}
	return &s3Store{
		uploader: s3manager.NewUploader(sess),
		client:   s3.New(sess),
		bucket:   config.S3Bucket,
	}, nil
}

// Upload 上传文件到S3：1、用uuid生成唯一的对象key，避免文件名冲突 2、按扩展名推断MIME类型 3、上传并返回外链
func (s *s3Store) Upload(file io.Reader, filename string) (*UploadResult, error) {
	key := fmt.Sprintf("%s/%s", uuid.New().String(), filepath.Base(filename))

	contentType := mime.TypeByExtension(filepath.Ext(filename))

	result, err := s.uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, err
	}

	return &UploadResult{URL: result.Location, Key: key}, nil
}

func (s *s3Store) Delete(key string) error {
	_, err := s.client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}
