package tts

import (
	"encoding/binary"
	"strings"
	"testing"
)

func frame(header string, payload []byte) []byte {
	out := make([]byte, 2+len(header)+len(payload))
	binary.BigEndian.PutUint16(out[:2], uint16(len(header)))
	copy(out[2:], header)
	copy(out[2+len(header):], payload)
	return out
}

func TestAudioPayload(t *testing.T) {
	audio := []byte{0x01, 0x02, 0x03}

	chunk, ok := audioPayload(frame("X-RequestId:abc\r\nPath:audio\r\n", audio))
	if !ok {
		t.Fatal("audio frame rejected")
	}
	if string(chunk) != string(audio) {
		t.Errorf("payload = %v", chunk)
	}

	if _, ok := audioPayload(frame("Path:turn.start\r\n", []byte("meta"))); ok {
		t.Error("non-audio frame accepted")
	}
	if _, ok := audioPayload(frame("Path:audio\r\n", nil)); ok {
		t.Error("empty audio frame accepted")
	}
	if _, ok := audioPayload([]byte{0x00}); ok {
		t.Error("truncated frame accepted")
	}
	// Header length pointing past the frame end.
	bad := []byte{0xff, 0xff, 'x'}
	if _, ok := audioPayload(bad); ok {
		t.Error("oversized header length accepted")
	}
}

func TestBuildSSML(t *testing.T) {
	ssml := buildSSML(Request{
		Text:     "Tom & Jerry <3",
		Voice:    "en-US-AriaNeural",
		Rate:     "+10%",
		Volume:   "+0%",
		Language: "en-US",
	})

	if !strings.Contains(ssml, "Tom &amp; Jerry &lt;3") {
		t.Errorf("text not escaped: %s", ssml)
	}
	if !strings.Contains(ssml, "name='en-US-AriaNeural'") {
		t.Errorf("voice missing: %s", ssml)
	}
	if !strings.Contains(ssml, "rate='+10%'") {
		t.Errorf("rate missing: %s", ssml)
	}
	if !strings.Contains(ssml, "xml:lang='en-US'") {
		t.Errorf("language missing: %s", ssml)
	}
}

func TestBuildSSMLDefaults(t *testing.T) {
	ssml := buildSSML(Request{Text: "hi", Voice: "en-US-AriaNeural"})
	if !strings.Contains(ssml, "xml:lang='en-US'") || !strings.Contains(ssml, "rate='+0%'") {
		t.Errorf("defaults not applied: %s", ssml)
	}
}
