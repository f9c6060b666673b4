package tts

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"html"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	edgeTrustedToken = "6A5AA1D4EAFF4E9FB37E23D68491D6F4"
	edgeWSSURL       = "wss://speech.platform.bing.com/consumer/speech/synthesize/readaloud/edge/v1"
	edgeOutputFormat = "audio-24khz-48kbitrate-mono-mp3"
)

// EdgeEngine synthesizes speech via the Edge read-aloud websocket service.
type EdgeEngine struct {
	dialer *websocket.Dialer
}

func NewEdgeEngine() *EdgeEngine {
	return &EdgeEngine{
		dialer: &websocket.Dialer{HandshakeTimeout: 15 * time.Second},
	}
}

func (e *EdgeEngine) Name() string {
	return "edge"
}

// Synthesize runs a full synthesis turn and returns the MP3 bytes.
func (e *EdgeEngine) Synthesize(ctx context.Context, req Request) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.stream(ctx, req, &buf); err != nil {
		return nil, err
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("no audio data received")
	}
	return buf.Bytes(), nil
}

// SynthesizeStream writes MP3 chunks to w as they arrive from the service.
func (e *EdgeEngine) SynthesizeStream(ctx context.Context, req Request, w io.Writer) error {
	return e.stream(ctx, req, w)
}

func (e *EdgeEngine) stream(ctx context.Context, req Request, w io.Writer) error {
	connID, err := randomHex(16)
	if err != nil {
		return fmt.Errorf("generate connection id: %w", err)
	}
	requestID, err := randomHex(16)
	if err != nil {
		return fmt.Errorf("generate request id: %w", err)
	}

	url := fmt.Sprintf("%s?TrustedClientToken=%s&ConnectionId=%s", edgeWSSURL, edgeTrustedToken, connID)
	header := http.Header{}
	header.Set("Origin", "chrome-extension://jdiccldimpdaibmpdkjnbmckianbfold")
	header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 Edg/120.0.0.0")

	conn, _, err := e.dialer.DialContext(ctx, url, header)
	if err != nil {
		return fmt.Errorf("dial speech service: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetReadDeadline(deadline)
		conn.SetWriteDeadline(deadline)
	}

	configMsg := fmt.Sprintf(
		"X-Timestamp:%s\r\nContent-Type:application/json; charset=utf-8\r\nPath:speech.config\r\n\r\n"+
			`{"context":{"synthesis":{"audio":{"metadataoptions":{"sentenceBoundaryEnabled":"false","wordBoundaryEnabled":"false"},"outputFormat":"%s"}}}}`,
		timestamp(), edgeOutputFormat)
	if err := conn.WriteMessage(websocket.TextMessage, []byte(configMsg)); err != nil {
		return fmt.Errorf("send speech config: %w", err)
	}

	ssmlMsg := fmt.Sprintf(
		"X-RequestId:%s\r\nContent-Type:application/ssml+xml\r\nX-Timestamp:%s\r\nPath:ssml\r\n\r\n%s",
		requestID, timestamp(), buildSSML(req))
	if err := conn.WriteMessage(websocket.TextMessage, []byte(ssmlMsg)); err != nil {
		return fmt.Errorf("send ssml: %w", err)
	}

	received := 0
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read synthesis frame: %w", err)
		}
		switch msgType {
		case websocket.TextMessage:
			if strings.Contains(string(data), "Path:turn.end") {
				log.Printf("[TTS.Edge] Turn complete, %d audio bytes", received)
				return nil
			}
		case websocket.BinaryMessage:
			chunk, ok := audioPayload(data)
			if !ok {
				continue
			}
			if _, err := w.Write(chunk); err != nil {
				return fmt.Errorf("write audio chunk: %w", err)
			}
			received += len(chunk)
		}
	}
}

// audioPayload extracts the MP3 chunk from a binary frame. The frame starts
// with a 2-byte big-endian header length followed by the header text; only
// frames whose header carries Path:audio contain audio data.
func audioPayload(frame []byte) ([]byte, bool) {
	if len(frame) < 2 {
		return nil, false
	}
	headerLen := int(binary.BigEndian.Uint16(frame[:2]))
	if len(frame) < 2+headerLen {
		return nil, false
	}
	header := string(frame[2 : 2+headerLen])
	if !strings.Contains(header, "Path:audio") {
		return nil, false
	}
	payload := frame[2+headerLen:]
	if len(payload) == 0 {
		return nil, false
	}
	return payload, true
}

func buildSSML(req Request) string {
	lang := req.Language
	if lang == "" {
		lang = "en-US"
	}
	rate := req.Rate
	if rate == "" {
		rate = "+0%"
	}
	volume := req.Volume
	if volume == "" {
		volume = "+0%"
	}
	return fmt.Sprintf(
		`<speak version='1.0' xmlns='http://www.w3.org/2001/10/synthesis' xml:lang='%s'>`+
			`<voice name='%s'><prosody pitch='+0Hz' rate='%s' volume='%s'>%s</prosody></voice></speak>`,
		lang, req.Voice, rate, volume, html.EscapeString(req.Text))
}

func timestamp() string {
	return time.Now().UTC().Format("Mon Jan 02 2006 15:04:05 GMT+0000 (Coordinated Universal Time)")
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
