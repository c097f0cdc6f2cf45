package telegram

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	tele "gopkg.in/telebot.v3"
)

// DefaultAPIURL is the production Telegram Bot API endpoint
const DefaultAPIURL = "https://api.telegram.org"

// requestTimeout bounds every remote call, including the update long poll
const requestTimeout = 60 * time.Second

// Client is a thin wrapper over the Telegram Bot API issuing named
// remote calls on behalf of the polling loop and the conversation service
type Client struct {
	bot        *tele.Bot
	httpClient *http.Client
}

// NewClient creates a Telegram client for the given bot token.
// An empty apiURL selects the production endpoint.
func NewClient(token, apiURL string) (*Client, error) {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	httpClient := &http.Client{Timeout: requestTimeout}

	bot, err := tele.NewBot(tele.Settings{
		URL:    apiURL,
		Token:  token,
		Client: httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return &Client{
		bot:        bot,
		httpClient: httpClient,
	}, nil
}

// FetchUpdates long-polls for updates past the given cursor and returns the
// batch together with the next cursor: one greater than the highest update id
// seen, or the cursor unchanged when the batch is empty. A client-side timeout
// is reported as an empty batch, not an error.
func (c *Client) FetchUpdates(offset int64) ([]Update, int64, error) {
	payload := struct {
		Offset int64 `json:"offset,omitempty"`
	}{Offset: offset}

	data, err := c.bot.Raw("getUpdates", payload)
	if err != nil {
		if isTimeout(err) {
			return nil, offset, nil
		}
		return nil, offset, err
	}

	var resp struct {
		Result []Update `json:"result"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, offset, fmt.Errorf("decode updates: %w", err)
	}

	next := offset
	for _, u := range resp.Result {
		if u.ID >= next {
			next = u.ID + 1
		}
	}

	return resp.Result, next, nil
}

// SendText sends a plain text message to the given chat
func (c *Client) SendText(chatID int64, text string) error {
	payload := struct {
		ChatID int64  `json:"chat_id"`
		Text   string `json:"text"`
	}{ChatID: chatID, Text: text}

	_, err := c.bot.Raw("sendMessage", payload)
	return err
}

// ResolveFilePath asks the API for the remote path of a file id
func (c *Client) ResolveFilePath(fileID string) (string, error) {
	file, err := c.bot.FileByID(fileID)
	if err != nil {
		return "", err
	}
	if file.FilePath == "" {
		return "", fmt.Errorf("no file path for file %s", fileID)
	}
	return file.FilePath, nil
}

// DownloadFile fetches attachment content by its remote path.
// The caller owns the returned reader.
func (c *Client) DownloadFile(remotePath string) (io.ReadCloser, error) {
	url := c.bot.URL + "/file/bot" + c.bot.Token + "/" + remotePath

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("download %s: status %d: %s", remotePath, resp.StatusCode, body)
	}

	return resp.Body, nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return os.IsTimeout(err)
}
