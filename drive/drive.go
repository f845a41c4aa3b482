package drive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/bkaya/pricelist-api/models"
)

const defaultBaseURL = "https://www.googleapis.com"

// Field projection requested from the files endpoint. Keep in sync
// with the RawFile struct tags.
const listFields = "files(id,name,mimeType,size,modifiedTime,webViewLink,webContentLink)"

// MIME markers recognized by the browser. Everything else returned
// by the provider is dropped from the listing.
const (
	MimeFolder      = "application/vnd.google-apps.folder"
	MimePDF         = "application/pdf"
	MimeSheet       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MimeSheetLegacy = "application/vnd.ms-excel"
	MimeSheetNative = "application/vnd.google-apps.spreadsheet"
)

// RawFile is one record of the provider's files listing, untouched.
type RawFile struct {
	Id             string `json:"id"`
	Name           string `json:"name"`
	MimeType       string `json:"mimeType"`
	Size           string `json:"size,omitempty"` // string-encoded bytes, absent for folders and some exports
	ModifiedTime   string `json:"modifiedTime"`
	WebViewLink    string `json:"webViewLink,omitempty"`
	WebContentLink string `json:"webContentLink,omitempty"`
}

// NetworkError covers both transport failures and non-2xx statuses
// of the listing request. The caller offers a user-driven retry and
// does not distinguish causes further.
type NetworkError struct {
	Status int // 0 when the request never got a response
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("drive: listing failed with status %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("drive: listing request failed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Client talks to the Drive v3 files endpoint. Construct it and pass
// it down; there is no package-level instance.
type Client struct {
	http       *http.Client
	baseURL    string
	apiKey     string
	rootFolder string
}

// NewClient returns a listing client for the given root folder.
// httpClient and baseURL may be left nil/empty for the defaults.
func NewClient(httpClient *http.Client, baseURL, apiKey, rootFolder string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		http:       httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		rootFolder: rootFolder,
	}
}

// RootFolder returns the configured root folder id.
func (c *Client) RootFolder() string { return c.rootFolder }

// ListFolder fetches the children of folderId in a single request.
// Empty folderId queries the configured root folder. Records with an
// unsupported MIME type are dropped from the result. One failed call
// surfaces as *NetworkError; nothing is retried here.
func (c *Client) ListFolder(ctx context.Context, folderId string) ([]RawFile, error) {
	if folderId == "" {
		folderId = c.rootFolder
	}

	q := url.Values{}
	q.Set("q", fmt.Sprintf("'%s' in parents and trashed=false", folderId))
	q.Set("key", c.apiKey)
	q.Set("fields", listFields)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/drive/v3/files?"+q.Encode(), nil)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &NetworkError{
			Status: resp.StatusCode,
			Err:    fmt.Errorf("%s", body),
		}
	}

	var result struct {
		Files []RawFile `json:"files"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("decoding listing: %w", err)}
	}

	files := make([]RawFile, 0, len(result.Files))
	for _, f := range result.Files {
		if supportedMime(f.MimeType) {
			files = append(files, f)
		}
	}
	return files, nil
}

func supportedMime(mime string) bool {
	switch mime {
	case MimeFolder, MimePDF, MimeSheet, MimeSheetLegacy, MimeSheetNative:
		return true
	}
	return false
}

// ViewURL builds the provider page that opens the entry in place:
// the folder browser for folders, the inline preview for PDFs and
// the spreadsheet editor for everything else.
func (c *Client) ViewURL(id string, kind models.Kind) string {
	switch kind {
	case models.KindFolder:
		return "https://drive.google.com/drive/folders/" + id
	case models.KindPDF:
		return "https://drive.google.com/file/d/" + id + "/view"
	default:
		return "https://docs.google.com/spreadsheets/d/" + id + "/edit"
	}
}

// DownloadURL builds the provider's forced-download link.
// Meaningless for folders.
func (c *Client) DownloadURL(id string) string {
	return "https://drive.google.com/uc?export=download&id=" + id
}
