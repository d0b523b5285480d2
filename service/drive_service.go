package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveScheme prefixes Drive references. "drive://<fileID>" names a file,
// "drive://folder/<folderID>/<name>" names a file by name inside a folder.
const DriveScheme = "drive://"

// DriveFile is an image file listed from a Drive folder
type DriveFile struct {
	ID       string
	Name     string
	MimeType string
}

// DriveServiceInterface defines the contract for Google Drive operations
type DriveServiceInterface interface {
	ListImages(ctx context.Context, folderID string) ([]DriveFile, error)
	Download(ctx context.Context, fileID string) ([]byte, error)
}

// DriveService handles Google Drive API operations
type DriveService struct {
	client *drive.Service
}

// NewDriveService creates a new DriveService instance.
// credentialsPath should be the path to the Service Account JSON file.
func NewDriveService(ctx context.Context, credentialsPath string) (*DriveService, error) {
	client, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath), option.WithScopes(drive.DriveReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &DriveService{client: client}, nil
}

// Ensure DriveService implements DriveServiceInterface
var _ DriveServiceInterface = (*DriveService)(nil)

var imageMimeTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/gif":  true,
}

// ListImages lists all image files in a Google Drive folder
func (ds *DriveService) ListImages(ctx context.Context, folderID string) ([]DriveFile, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false", folderID)

	var out []DriveFile
	pageToken := ""
	for {
		call := ds.client.Files.List().
			Context(ctx).
			Q(query).
			Fields("nextPageToken, files(id, name, mimeType)")
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		r, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list files: %w", err)
		}

		for _, f := range r.Files {
			if imageMimeTypes[strings.ToLower(f.MimeType)] {
				out = append(out, DriveFile{ID: f.Id, Name: f.Name, MimeType: f.MimeType})
			}
		}

		pageToken = r.NextPageToken
		if pageToken == "" {
			break
		}
	}
	return out, nil
}

// Download returns the content of a Drive file
func (ds *DriveService) Download(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := ds.client.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fileID, err)
	}
	return data, nil
}

// DriveFetcher resolves drive:// references through a DriveServiceInterface
type DriveFetcher struct {
	drive DriveServiceInterface
}

// NewDriveFetcher creates a fetcher backed by the given Drive service
func NewDriveFetcher(d DriveServiceInterface) *DriveFetcher {
	return &DriveFetcher{drive: d}
}

// Ensure DriveFetcher implements Fetcher
var _ Fetcher = (*DriveFetcher)(nil)

// Fetch implements Fetcher
func (f *DriveFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	rest := strings.TrimPrefix(ref, DriveScheme)
	if !strings.HasPrefix(rest, "folder/") {
		if rest == "" {
			return nil, fmt.Errorf("empty drive reference")
		}
		return f.drive.Download(ctx, rest)
	}

	folderID, name, ok := strings.Cut(strings.TrimPrefix(rest, "folder/"), "/")
	if !ok || folderID == "" || name == "" {
		return nil, fmt.Errorf("malformed drive folder reference %q", ref)
	}
	files, err := f.drive.ListImages(ctx, folderID)
	if err != nil {
		return nil, err
	}
	base := path.Base(name)
	for _, file := range files {
		if strings.EqualFold(file.Name, base) {
			return f.drive.Download(ctx, file.ID)
		}
	}
	return nil, fmt.Errorf("file %q not found in drive folder %s", base, folderID)
}
