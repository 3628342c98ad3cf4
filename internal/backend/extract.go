package backend

import (
	"context"
	"strings"

	"github.com/oukeidos/tunelate/internal/apperrors"
	"github.com/oukeidos/tunelate/internal/youtube"
)

// Lyrics is the raw extraction result for one video.
type Lyrics struct {
	Lyrics   string `json:"lyrics"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Duration int    `json:"duration"`
	VideoID  string `json:"videoId"`
}

type extractRequest struct {
	URL     string `json:"url"`
	VideoID string `json:"videoId"`
}

// Extractor fetches lyrics for a video URL.
type Extractor interface {
	ExtractLyrics(ctx context.Context, url string) (*Lyrics, error)
}

var _ Extractor = (*Client)(nil)

// ExtractLyrics validates url locally and asks the API for the video's
// lyrics. An unparseable URL fails with INVALID_URL before any network call.
func (c *Client) ExtractLyrics(ctx context.Context, url string) (*Lyrics, error) {
	id, err := youtube.VideoID(url)
	if err != nil {
		return nil, err
	}

	var data Lyrics
	err = c.post(ctx, c.extract, "/api/lyrics/extract", extractRequest{
		URL:     strings.TrimSpace(url),
		VideoID: id,
	}, apperrors.KindVideoNotFound, &data)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(data.Lyrics) == "" {
		return nil, apperrors.New(apperrors.KindNoLyricsFound, "", nil)
	}
	if data.VideoID == "" {
		data.VideoID = id
	}
	return &data, nil
}
