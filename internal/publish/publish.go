// Package publish uploads a rendered report directory to Azure Blob Storage.
package publish

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
)

// uploader is the subset of the blob client used by the publisher.
type uploader interface {
	UploadFile(ctx context.Context, containerName string, blobName string, file *os.File, o *azblob.UploadFileOptions) (azblob.UploadFileResponse, error)
}

// Publisher uploads report files to a blob container.
type Publisher struct {
	client    uploader
	container string
	prefix    string
}

// New creates a Publisher for the given storage account URL and container.
// Authentication uses the default Azure credential chain, so it picks up
// environment variables, managed identity, or an az CLI login.
func New(accountURL, container, prefix string) (*Publisher, error) {
	if accountURL == "" {
		return nil, fmt.Errorf("publish: account URL is required")
	}
	if container == "" {
		return nil, fmt.Errorf("publish: container name is required")
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("publish: creating credential: %w", err)
	}

	client, err := azblob.NewClient(accountURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("publish: creating blob client: %w", err)
	}

	return &Publisher{client: client, container: container, prefix: prefix}, nil
}

// PublishDir uploads every regular file under dir, preserving the relative
// layout. Blob names are prefix/relpath with forward slashes. Returns the
// uploaded blob names.
func (p *Publisher) PublishDir(ctx context.Context, dir string) ([]string, error) {
	var uploaded []string

	err := filepath.WalkDir(dir, func(fp string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, fp)
		if err != nil {
			return err
		}
		blobName := path.Join(p.prefix, filepath.ToSlash(rel))

		if err := p.uploadFile(ctx, fp, blobName); err != nil {
			return fmt.Errorf("uploading %s: %w", rel, err)
		}

		slog.Debug("uploaded blob", "container", p.container, "blob", blobName)
		uploaded = append(uploaded, blobName)
		return nil
	})
	if err != nil {
		return uploaded, err
	}
	return uploaded, nil
}

func (p *Publisher) uploadFile(ctx context.Context, localPath, blobName string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer f.Close()

	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(localPath)))
	var opts *azblob.UploadFileOptions
	if contentType != "" {
		opts = &azblob.UploadFileOptions{
			HTTPHeaders: &blob.HTTPHeaders{BlobContentType: &contentType},
		}
	}

	_, err = p.client.UploadFile(ctx, p.container, blobName, f, opts)
	return err
}
