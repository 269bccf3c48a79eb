package mailer

import (
	"context"
	"io"
	"log"
	"strings"

	"github.com/minio/minio-go/v7"
)

// ObjectPutter is the slice of the MinIO client the archive needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// ArchivingSender stores the HTML body of every delivered message under
// notifications/<id>.html. Archive failures are logged and never fail delivery.
type ArchivingSender struct {
	next   Sender
	store  ObjectPutter
	bucket string
}

func NewArchivingSender(next Sender, store ObjectPutter, bucket string) *ArchivingSender {
	return &ArchivingSender{next: next, store: store, bucket: bucket}
}

func (a *ArchivingSender) Name() string { return a.next.Name() }

func (a *ArchivingSender) Send(ctx context.Context, msg Message) error {
	if err := a.next.Send(ctx, msg); err != nil {
		return err
	}
	_, err := a.store.PutObject(ctx, a.bucket, ObjectName(msg.ID), strings.NewReader(msg.HTML), int64(len(msg.HTML)),
		minio.PutObjectOptions{ContentType: "text/html; charset=utf-8"})
	if err != nil {
		log.Printf("[mail] archive %s failed: %v", msg.ID, err)
	}
	return nil
}

func ObjectName(id string) string {
	return "notifications/" + id + ".html"
}
