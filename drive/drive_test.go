package drive

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bkaya/pricelist-api/models"
)

func listServer(t *testing.T, wantQuery string, files []RawFile) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/drive/v3/files", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, wantQuery, q.Get("q"))
		assert.Equal(t, "test-key", q.Get("key"))
		assert.Equal(t, listFields, q.Get("fields"))

		json.NewEncoder(w).Encode(map[string]interface{}{"files": files})
	}))
}

func Test_ListFolder(t *testing.T) {
	srv := listServer(t, "'folder-x' in parents and trashed=false", []RawFile{
		{Id: "d1", Name: "liste.pdf", MimeType: MimePDF, Size: "1024"},
		{Id: "f1", Name: "2024", MimeType: MimeFolder},
	})
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "test-key", "root-y")
	files, err := c.ListFolder(context.Background(), "folder-x")

	assert.NoError(t, err)
	assert.Len(t, files, 2)
	assert.Equal(t, "liste.pdf", files[0].Name)
}

// An empty folder id must query the configured root folder.
func Test_ListFolderDefaultsToRoot(t *testing.T) {
	srv := listServer(t, "'root-y' in parents and trashed=false", nil)
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "test-key", "root-y")
	files, err := c.ListFolder(context.Background(), "")

	assert.NoError(t, err)
	assert.Empty(t, files)
}

// Unsupported MIME types are dropped silently, supported ones kept,
// legacy Excel variants included.
func Test_ListFolderFiltersMimeTypes(t *testing.T) {
	srv := listServer(t, "'root-y' in parents and trashed=false", []RawFile{
		{Id: "1", Name: "a", MimeType: MimeFolder},
		{Id: "2", Name: "b", MimeType: MimePDF},
		{Id: "3", Name: "c", MimeType: MimeSheet},
		{Id: "4", Name: "d", MimeType: MimeSheetLegacy},
		{Id: "5", Name: "e", MimeType: MimeSheetNative},
		{Id: "6", Name: "f", MimeType: "image/png"},
		{Id: "7", Name: "g", MimeType: "text/plain"},
	})
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "test-key", "root-y")
	files, err := c.ListFolder(context.Background(), "")

	assert.NoError(t, err)
	assert.Len(t, files, 5)
	for _, f := range files {
		assert.NotEqual(t, "image/png", f.MimeType)
		assert.NotEqual(t, "text/plain", f.MimeType)
	}
}

func Test_ListFolderNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "test-key", "root-y")
	_, err := c.ListFolder(context.Background(), "")

	var netErr *NetworkError
	assert.ErrorAs(t, err, &netErr)
	assert.Equal(t, http.StatusForbidden, netErr.Status)
}

func Test_ListFolderTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewClient(nil, srv.URL, "test-key", "root-y")
	_, err := c.ListFolder(context.Background(), "")

	var netErr *NetworkError
	assert.ErrorAs(t, err, &netErr)
	assert.Equal(t, 0, netErr.Status)
}

func Test_URLBuilders(t *testing.T) {
	c := NewClient(nil, "", "k", "r")

	assert.Equal(t, "https://drive.google.com/drive/folders/abc", c.ViewURL("abc", models.KindFolder))
	assert.Equal(t, "https://drive.google.com/file/d/abc/view", c.ViewURL("abc", models.KindPDF))
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/abc/edit", c.ViewURL("abc", models.KindSpreadsheet))
	assert.Equal(t, "https://drive.google.com/uc?export=download&id=abc", c.DownloadURL("abc"))
}
