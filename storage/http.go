package storage

import (
	"bytes"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// HTTPStore uploads blobs to a remote storage service over multipart POST.
type HTTPStore struct {
	client   *resty.Client
	endpoint string
	apiKey   string
}

type uploadResult struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
}

func NewHTTPStore(endpoint, apiKey string) *HTTPStore {
	return &HTTPStore{
		client:   resty.New(),
		endpoint: endpoint,
		apiKey:   apiKey,
	}
}

func (s *HTTPStore) Upload(data []byte, folder, publicID string) (string, error) {
	result := new(uploadResult)

	resp, err := s.client.R().
		SetFileReader("file", publicID+".png", bytes.NewReader(data)).
		SetFormData(map[string]string{
			"folder":    folder,
			"public_id": publicID,
		}).
		SetHeader("Authorization", "Bearer "+s.apiKey).
		SetResult(result).
		Post(s.endpoint)
	if err != nil {
		return "", fmt.Errorf("upload blob: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("upload blob: storage returned %s", resp.Status())
	}

	if result.SecureURL != "" {
		return result.SecureURL, nil
	}
	if result.URL != "" {
		return result.URL, nil
	}
	return "", fmt.Errorf("upload blob: storage response missing url")
}

func (s *HTTPStore) Delete(folder, publicID string) error {
	resp, err := s.client.R().
		SetHeader("Authorization", "Bearer "+s.apiKey).
		Delete(s.endpoint + "/" + folder + "/" + publicID)
	if err != nil {
		return fmt.Errorf("delete blob: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("delete blob: storage returned %s", resp.Status())
	}
	return nil
}
