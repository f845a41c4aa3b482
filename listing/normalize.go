package listing

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/bkaya/pricelist-api/drive"
	"github.com/bkaya/pricelist-api/models"
)

// Size placeholders. Folders have no meaningful size and some
// provider exports omit the field entirely.
const (
	SizeFolder  = "—"
	SizeUnknown = "Unknown"
)

// Source lists a remote folder and hands out normalized entries.
// Downstream code only ever sees models.FileEntry, never the raw
// provider shape.
type Source struct {
	client *drive.Client
}

func NewSource(client *drive.Client) *Source {
	return &Source{client: client}
}

// ListFolder implements models.Lister.
func (s *Source) ListFolder(ctx context.Context, folderId string) ([]models.FileEntry, error) {
	raw, err := s.client.ListFolder(ctx, folderId)
	if err != nil {
		return nil, err
	}

	entries := make([]models.FileEntry, 0, len(raw))
	for _, r := range raw {
		entries = append(entries, s.Normalize(r))
	}
	return entries, nil
}

// Normalize converts one raw record into a FileEntry. It never
// fails: a malformed size or timestamp degrades to a sentinel so a
// single bad record cannot abort the rest of the listing.
func (s *Source) Normalize(raw drive.RawFile) models.FileEntry {
	kind := Classify(raw.MimeType)
	isFolder := kind == models.KindFolder

	size := SizeFolder
	if !isFolder {
		size = SizeUnknown
		if raw.Size != "" {
			if bytes, err := strconv.ParseInt(raw.Size, 10, 64); err == nil {
				size = FormatSize(bytes)
			}
		}
	}

	// zero time on a parse failure, sorts first under DateAscending
	modified, _ := time.Parse(time.RFC3339, raw.ModifiedTime)

	downloadURL := ""
	if !isFolder {
		downloadURL = s.client.DownloadURL(raw.Id)
	}

	return models.FileEntry{
		Id:          raw.Id,
		Name:        raw.Name,
		Kind:        kind,
		Size:        size,
		Modified:    modified,
		ViewURL:     s.client.ViewURL(raw.Id, kind),
		DownloadURL: downloadURL,
		IsFolder:    isFolder,
	}
}

// Classify maps a provider MIME type to an entry kind. Anything
// that is neither a folder nor a PDF counts as a spreadsheet,
// legacy Excel variants included.
func Classify(mime string) models.Kind {
	switch mime {
	case drive.MimeFolder:
		return models.KindFolder
	case drive.MimePDF:
		return models.KindPDF
	default:
		return models.KindSpreadsheet
	}
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatSize renders a byte count base-1024 with two decimals,
// capped at GB. FormatSize(0) == "0 Bytes".
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	v := float64(bytes)
	unit := 0
	for v >= 1024 && unit < len(sizeUnits)-1 {
		v /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f %s", v, sizeUnits[unit])
}
