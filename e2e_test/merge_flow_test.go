//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/esc0rtd3w/performous-tools/cmd"
	"github.com/esc0rtd3w/performous-tools/model"
)

var leadChart = strings.Join([]string{
	"#TITLE:Never Alone (Lead)",
	"#ARTIST:Starlight",
	"#BPM:120",
	"#GAP:1000",
	": 0 2 0 Nev",
	": 2 2 2 er",
	"* 4 4 4 alone",
	"- 8",
	"E",
}, "\n")

var harmonyChart = strings.Join([]string{
	"#TITLE:Never Alone (Harmony)",
	"#ARTIST:Starlight",
	"#BPM:120",
	"#GAP:1500",
	": 0 2 7 Nev",
	": 2 2 9 er",
	"F 4 4 ~",
	"E",
}, "\n")

// the harmony lines end up shifted by 4 units: 500 ms at 120 BPM
var wantMerged = strings.Join([]string{
	"#TITLE:Never Alone (Duet)",
	"#ARTIST:Starlight",
	"#BPM:120",
	"#GAP:1000",
	"P1",
	": 0 2 0 Nev",
	": 2 2 2 er",
	"* 4 4 4 alone",
	"- 8",
	"P2",
	": 4 2 7 Nev",
	": 6 2 9 er",
	"F 8 4 ~",
	"E",
	"",
}, "\r\n")

func writeChart(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestMergeFilesE2E(t *testing.T) {
	dir := t.TempDir()
	lead := writeChart(t, dir, "Never Alone (Lead).txt", leadChart)
	harmony := writeChart(t, dir, "Never Alone (Harmony).txt", harmonyChart)

	out, err := cmd.MergeFiles([]string{lead, harmony}, "", "")

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(filepath.Join(dir, "Never Alone (Duet).txt"), out)

	got, err := os.ReadFile(out)
	assert.NoError(err)
	assert.Equal(wantMerged, string(got))
}

func createMergeReqBody(req model.MergeRequest) io.Reader {
	data, err := json.Marshal(req)
	if err != nil {
		panic(err.Error())
	}
	return bytes.NewReader(data)
}

func TestMergeOverHTTPE2E(t *testing.T) {
	body := createMergeReqBody(model.MergeRequest{Charts: []string{leadChart, harmonyChart}})
	req := httptest.NewRequest(http.MethodPost, "/merge", body)
	w := httptest.NewRecorder()
	cmd.HandleMerge(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(resp.StatusCode, 200)

	var mergeResponse model.MergeResponse
	err := json.Unmarshal(respBody, &mergeResponse)
	if err != nil {
		panic(err.Error())
	}

	assert.Equal(mergeResponse, model.MergeResponse{
		Title:   "Never Alone (Duet)",
		Players: 2,
		Chart:   wantMerged,
	})
}

func TestMergeOverHTTPRejectsMismatchedChartsE2E(t *testing.T) {
	other := strings.Replace(harmonyChart, "#ARTIST:Starlight", "#ARTIST:Someone Else", 1)
	body := createMergeReqBody(model.MergeRequest{Charts: []string{leadChart, other}})
	req := httptest.NewRequest(http.MethodPost, "/merge", body)
	w := httptest.NewRecorder()
	cmd.HandleMerge(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(resp.StatusCode, 422)

	var errResponse model.ErrorResponse
	err := json.Unmarshal(respBody, &errResponse)
	if err != nil {
		panic(err.Error())
	}
	assert.Contains(errResponse.Error, "ARTIST")
}
