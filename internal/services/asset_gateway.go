package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// AssetInfo is the slice of the asset service's resource metadata the core
// persists locally.
type AssetInfo struct {
	PublicID string `json:"public_id"`
	URL      string `json:"secure_url"`
	Format   string `json:"format"`
	Bytes    int64  `json:"bytes"`
}

// AssetGateway wraps the external asset service. Assets are uploaded by the
// client directly; the backend only reads metadata and requests deletion.
type AssetGateway interface {
	Resource(ctx context.Context, publicID string) (*AssetInfo, error)
	Destroy(ctx context.Context, publicID string) error
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

type cloudinaryGateway struct {
	cfg    CloudinaryConfig
	client *http.Client
}

func NewCloudinaryGateway(cfg CloudinaryConfig) AssetGateway {
	return &cloudinaryGateway{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (g *cloudinaryGateway) Resource(ctx context.Context, publicID string) (*AssetInfo, error) {
	endpoint := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/resources/image/upload/%s",
		g.cfg.CloudName, url.PathEscape(publicID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(g.cfg.APIKey, g.cfg.APISecret)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("asset %s not found", publicID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("asset service returned %d", resp.StatusCode)
	}

	var info AssetInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (g *cloudinaryGateway) Destroy(ctx context.Context, publicID string) error {
	endpoint := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/resources/image/upload", g.cfg.CloudName)

	form := url.Values{}
	form.Set("public_ids[]", publicID)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		endpoint+"?"+form.Encode(), strings.NewReader(""))
	if err != nil {
		return err
	}
	req.SetBasicAuth(g.cfg.APIKey, g.cfg.APISecret)

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("asset service returned %d", resp.StatusCode)
	}
	return nil
}
