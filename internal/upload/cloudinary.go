// Package upload stores chat file attachments in Cloudinary and returns the
// stable URL used as the message's FileURL.
package upload

import (
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Uploader turns a binary payload into a stable URL. Implemented by Service;
// mocked in tests.
type Uploader interface {
	Upload(data []byte) (string, error)
}

// Service drives Cloudinary's signed upload endpoint.
// Configured via CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY,
// CLOUDINARY_API_SECRET and optional CLOUDINARY_FOLDER.
type Service struct {
	cloudName string
	apiKey    string
	apiSecret string
	folder    string
	client    *http.Client
}

// NewService reads the Cloudinary credentials from the environment.
func NewService() (*Service, error) {
	s := &Service{
		cloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		apiKey:    os.Getenv("CLOUDINARY_API_KEY"),
		apiSecret: os.Getenv("CLOUDINARY_API_SECRET"),
		folder:    os.Getenv("CLOUDINARY_FOLDER"),
		client:    &http.Client{Timeout: 30 * time.Second},
	}
	if s.cloudName == "" || s.apiKey == "" || s.apiSecret == "" {
		return nil, errors.New("upload: missing Cloudinary credentials")
	}
	return s, nil
}

var _ Uploader = (*Service)(nil)

// Upload pushes the payload as an auto-typed asset under a generated public
// id and returns the secure URL.
func (s *Service) Upload(data []byte) (string, error) {
	publicID := uuid.New().String()
	if s.folder != "" {
		publicID = s.folder + "/" + publicID
	}

	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	signatureString := fmt.Sprintf("public_id=%s&timestamp=%s%s", publicID, timestamp, s.apiSecret)
	signature := fmt.Sprintf("%x", sha1.Sum([]byte(signatureString)))

	form := url.Values{}
	form.Add("file", "data:application/octet-stream;base64,"+base64.StdEncoding.EncodeToString(data))
	form.Add("api_key", s.apiKey)
	form.Add("public_id", publicID)
	form.Add("timestamp", timestamp)
	form.Add("signature", signature)

	endpoint := "https://api.cloudinary.com/v1_1/" + s.cloudName + "/auto/upload"
	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upload: cloudinary returned status %d: %s", res.StatusCode, body)
	}

	var cloudRes struct {
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
		Error     struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &cloudRes); err != nil {
		return "", err
	}
	if cloudRes.Error.Message != "" {
		return "", fmt.Errorf("upload: %s", cloudRes.Error.Message)
	}

	if cloudRes.SecureURL != "" {
		return cloudRes.SecureURL, nil
	}
	if cloudRes.URL != "" {
		return cloudRes.URL, nil
	}
	return "", errors.New("upload: no URL in Cloudinary response")
}
