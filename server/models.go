package server

import "github.com/bkaya/pricelist-api/models"

// REQUESTS

type LoginRequest struct {
	Password string `json:"password"`
}

type OpenRequest struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

type CrumbRequest struct {
	Index int `json:"index"` // -1 jumps to root
}

// RESPONSES

type ErrResponse struct {
	Error string `json:"error"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type SessionResponse struct {
	Authenticated bool `json:"authenticated"`
}

type BrowseResponse struct {
	Session string `json:"session"`
}

type ListedFile struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Size        string `json:"size"`
	Modified    string `json:"modified,omitempty"` // RFC 3339, empty when unknown
	ViewUrl     string `json:"viewUrl"`
	DownloadUrl string `json:"downloadUrl,omitempty"`
	IsFolder    bool   `json:"isFolder"`
}

type ListFilesResponse struct {
	Files       []ListedFile        `json:"files"`
	Breadcrumbs []models.Breadcrumb `json:"breadcrumbs"`
}
