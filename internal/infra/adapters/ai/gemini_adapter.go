package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"media-studio/internal/domain"
	"media-studio/internal/domain/model"
	"media-studio/internal/domain/ports/adapter"
)

var _ adapter.GenMediaAdapter = (*GeminiAdapter)(nil)

type GeminiAdapter struct {
	client *genai.Client
	httpc  *http.Client
	apiKey string

	editModel  string
	imageModel string
	videoModel string
}

// NewGeminiAdapter creates a Gemini adapter using the official SDK.
func NewGeminiAdapter(ctx context.Context, apiKey, baseURL, editModel, imageModel, videoModel string) (*GeminiAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: empty api key")
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: baseURL,
		},
	})
	if err != nil {
		return nil, err
	}
	return &GeminiAdapter{
		client:     c,
		httpc:      &http.Client{Timeout: 5 * time.Minute},
		apiKey:     apiKey,
		editModel:  editModel,
		imageModel: imageModel,
		videoModel: videoModel,
	}, nil
}

// EditImage sends the image plus prompt as one multimodal request and
// scans the candidate parts for inline image data. A text-only answer is
// a valid outcome here; deciding whether to retry is the caller's call.
func (g *GeminiAdapter) EditImage(ctx context.Context, req model.EditRequest) (adapter.EditOutcome, error) {
	contents := []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: req.Image.MIMEType, Data: req.Image.Data}},
			{Text: req.Prompt},
		},
	}}

	resp, err := g.client.Models.GenerateContent(ctx, g.editModel, contents, nil)
	if err != nil {
		return adapter.EditOutcome{}, err
	}

	var texts []string
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil {
				blob := model.MediaBlob{Data: part.InlineData.Data, MIMEType: part.InlineData.MIMEType}
				if blob.IsImage() {
					return adapter.EditOutcome{Image: &blob}, nil
				}
			}
			if part.Text != "" {
				texts = append(texts, part.Text)
			}
		}
	}
	return adapter.EditOutcome{Text: strings.Join(texts, " ")}, nil
}

func (g *GeminiAdapter) GenerateImage(ctx context.Context, req model.GenerationRequest) (model.MediaBlob, error) {
	resp, err := g.client.Models.GenerateImages(ctx, g.imageModel, req.Prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		OutputMIMEType: "image/png",
		AspectRatio:    "1:1",
	})
	if err != nil {
		return model.MediaBlob{}, err
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return model.MediaBlob{}, domain.ErrEmptyResponse
	}
	img := resp.GeneratedImages[0].Image
	mime := img.MIMEType
	if mime == "" {
		mime = "image/png"
	}
	return model.MediaBlob{Data: img.ImageBytes, MIMEType: mime}, nil
}

func (g *GeminiAdapter) SubmitVideoJob(ctx context.Context, req model.VideoJobRequest) (model.VideoOperation, error) {
	var seed *genai.Image
	if req.SeedImage != nil {
		seed = &genai.Image{ImageBytes: req.SeedImage.Data, MIMEType: req.SeedImage.MIMEType}
	}
	op, err := g.client.Models.GenerateVideos(ctx, g.videoModel, req.Prompt, seed, &genai.GenerateVideosConfig{
		NumberOfVideos: 1,
	})
	if err != nil {
		return model.VideoOperation{}, err
	}
	return toVideoOperation(op), nil
}

func (g *GeminiAdapter) PollVideoJob(ctx context.Context, op model.VideoOperation) (model.VideoOperation, error) {
	fresh, err := g.client.Operations.GetVideosOperation(ctx, &genai.GenerateVideosOperation{Name: op.Name}, nil)
	if err != nil {
		return model.VideoOperation{}, err
	}
	return toVideoOperation(fresh), nil
}

// DownloadResult fetches the artifact behind a result locator. The
// locator alone is not authorized; the API key goes on as a query
// parameter, the same way the Files API expects it.
func (g *GeminiAdapter) DownloadResult(ctx context.Context, uri string) ([]byte, error) {
	sep := "?"
	if strings.Contains(uri, "?") {
		sep = "&"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri+sep+"key="+g.apiKey, nil)
	if err != nil {
		return nil, err
	}
	resp, err := g.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("result download: unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func toVideoOperation(op *genai.GenerateVideosOperation) model.VideoOperation {
	out := model.VideoOperation{Name: op.Name, Done: op.Done}
	if len(op.Error) > 0 {
		if msg, ok := op.Error["message"].(string); ok && msg != "" {
			out.FailureReason = msg
		} else {
			out.FailureReason = fmt.Sprint(op.Error)
		}
	}
	if op.Response != nil && len(op.Response.GeneratedVideos) > 0 {
		if v := op.Response.GeneratedVideos[0].Video; v != nil {
			out.ResultURI = v.URI
			out.ResultMIME = v.MIMEType
		}
	}
	return out
}
