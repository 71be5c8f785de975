package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"

	"renthouse-auth/pkg/config"
)

const (
	facebookProfileFields = "id,name,email,picture.type(large)"
	facebookTimeout       = 10 * time.Second
)

type facebookDebugTokenResponse struct {
	Data struct {
		IsValid bool   `json:"is_valid"`
		AppId   string `json:"app_id"`
		UserId  string `json:"user_id"`
	} `json:"data"`
}

type facebookProfileResponse struct {
	Id      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture struct {
		Data struct {
			Url string `json:"url"`
		} `json:"data"`
	} `json:"picture"`
}

type facebookProvider struct {
	appId     string
	appSecret string
	graphUrl  string
	client    *fiber.Client
}

func NewFacebookProvider(facebookConfig config.FacebookConfig) Provider {
	graphUrl := facebookConfig.GraphUrl
	if graphUrl == "" {
		graphUrl = config.DefaultFacebookGraphUrl
	}

	return &facebookProvider{
		appId:     facebookConfig.AppId,
		appSecret: facebookConfig.AppSecret,
		graphUrl:  graphUrl,
		client: &fiber.Client{
			JSONEncoder: json.Marshal,
			JSONDecoder: json.Unmarshal,
		},
	}
}

func (p *facebookProvider) Name() string {
	return ProviderFacebook
}

func (p *facebookProvider) Verify(ctx context.Context, accessToken string) (*Profile, error) {
	if accessToken == "" {
		return nil, ErrTokenRejected
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	debugQuery := url.Values{}
	debugQuery.Set("input_token", accessToken)
	debugQuery.Set("access_token", p.appId+"|"+p.appSecret)

	var debugResponse facebookDebugTokenResponse
	statusCode, err := p.getJSON("/debug_token", debugQuery, &debugResponse)
	if err != nil {
		return nil, err
	}
	if statusCode != fiber.StatusOK {
		return nil, fmt.Errorf("facebook debug_token answered with status %d", statusCode)
	}

	if !debugResponse.Data.IsValid {
		return nil, fmt.Errorf("%w: token is not valid", ErrTokenRejected)
	}
	if debugResponse.Data.AppId != p.appId {
		return nil, fmt.Errorf("%w: token was issued for another app", ErrTokenRejected)
	}

	profileQuery := url.Values{}
	profileQuery.Set("fields", facebookProfileFields)
	profileQuery.Set("access_token", accessToken)

	var profileResponse facebookProfileResponse
	statusCode, err = p.getJSON("/me", profileQuery, &profileResponse)
	if err != nil {
		return nil, err
	}
	if statusCode >= fiber.StatusBadRequest && statusCode < fiber.StatusInternalServerError {
		return nil, fmt.Errorf("%w: profile request answered with status %d", ErrTokenRejected, statusCode)
	}
	if statusCode != fiber.StatusOK {
		return nil, fmt.Errorf("facebook profile answered with status %d", statusCode)
	}

	if debugResponse.Data.UserId != "" && profileResponse.Id != debugResponse.Data.UserId {
		return nil, fmt.Errorf("%w: profile does not belong to token owner", ErrTokenRejected)
	}

	if profileResponse.Email == "" {
		return nil, ErrEmailNotShared
	}

	return &Profile{
		Id:      profileResponse.Id,
		Email:   NormalizeEmail(profileResponse.Email),
		Name:    profileResponse.Name,
		Picture: profileResponse.Picture.Data.Url,
	}, nil
}

func (p *facebookProvider) getJSON(path string, query url.Values, out interface{}) (int, error) {
	agent := p.client.Get(p.graphUrl + path + "?" + query.Encode())
	agent.Timeout(facebookTimeout)

	statusCode, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return 0, fmt.Errorf("facebook graph request failed: %w", errors.Join(errs...))
	}

	if statusCode == fiber.StatusOK {
		if err := json.Unmarshal(body, out); err != nil {
			return 0, fmt.Errorf("facebook graph response is malformed: %w", err)
		}
	}

	return statusCode, nil
}
