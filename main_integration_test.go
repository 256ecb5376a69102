package main_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAppBinary      = "./contacts_test_app" // Name for the test binary
	testAppPort        = "8089"
	testServiceApiPort = "8091"
	testAppURL         = "http://localhost:" + testAppPort
	testServiceApiURL  = "http://localhost:" + testServiceApiPort
	startupTimeout     = 15 * time.Second
	pingEndpoint       = testAppURL + "/v1/ping"
)

// fakeFinderAPI stands in for the backend the page reads from.
var fakeFinderAPI = struct {
	mu         sync.Mutex
	lastAuth   string
	listStatus int
	listBody   string
}{listStatus: http.StatusOK}

func setFinderAPIResponse(status int, body string) {
	fakeFinderAPI.mu.Lock()
	defer fakeFinderAPI.mu.Unlock()
	fakeFinderAPI.listStatus = status
	fakeFinderAPI.listBody = body
}

func newFakeFinderAPI() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/finder/send-messages", func(w http.ResponseWriter, r *http.Request) {
		fakeFinderAPI.mu.Lock()
		defer fakeFinderAPI.mu.Unlock()
		fakeFinderAPI.lastAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(fakeFinderAPI.listStatus)
		_, _ = io.WriteString(w, fakeFinderAPI.listBody)
	})
	return httptest.NewServer(mux)
}

// TestMain builds the binary, starts it against a fake finder API and stops it afterwards.
func TestMain(m *testing.M) {
	defer func() {
		log.Println("Integration Test Teardown: Cleaning up test binary...")
		_ = os.Remove(testAppBinary)
	}()

	log.Println("Integration Test Setup: Building application...")
	buildCmd := exec.Command("go", "build", "-o", testAppBinary, ".")
	buildOutput, err := buildCmd.CombinedOutput()
	if err != nil {
		log.Printf("Failed to build application: %v\nOutput:\n%s", err, string(buildOutput))
		os.Exit(1)
	}

	finderAPI := newFakeFinderAPI()
	defer finderAPI.Close()

	appCmd := exec.Command(testAppBinary, "-m", "all")
	appCmd.Env = append(os.Environ(),
		"WEB_PORT="+testAppPort,
		"SERVICE_API_PORT="+testServiceApiPort,
		"REPOSITORY_SOURCE=remote",
		"FINDER_API_BASE_URL="+finderAPI.URL,
		"RATE_LIMIT_BUCKET_SIZE=100",
		"RATE_LIMIT_REFILL_RATE=100",
		"LOG_LEVEL=warn",
	)
	appCmd.Stderr = os.Stderr
	appCmd.Stdout = os.Stdout

	if err := appCmd.Start(); err != nil {
		log.Printf("Failed to start application: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Println("Integration Test Teardown: Stopping application...")
		if processErr := appCmd.Process.Signal(syscall.SIGTERM); processErr != nil {
			_ = appCmd.Process.Kill()
		}
		_, _ = appCmd.Process.Wait()
	}()

	startTime := time.Now()
	ready := false
	for time.Since(startTime) < startupTimeout {
		resp, err := http.Get(pingEndpoint)
		if err == nil {
			bodyBytes, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK && string(bodyBytes) == "pong" {
				ready = true
				break
			}
		}
		time.Sleep(200 * time.Millisecond)
	}
	if !ready {
		log.Printf("Application failed to start within %v", startupTimeout)
		return
	}

	exitCode := m.Run()
	log.Printf("Integration Test Teardown: Tests finished with exit code %d.", exitCode)
}

func getPage(t *testing.T, path string, header http.Header) (int, string) {
	t.Helper()
	req, err := http.NewRequest("GET", testAppURL+path, nil)
	require.NoError(t, err)
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestIntegration_Ping(t *testing.T) {
	status, body := getPage(t, "/v1/ping", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "pong", body)
}

func TestIntegration_ContactsList(t *testing.T) {
	setFinderAPIResponse(http.StatusOK, `[
		{"sendMessageId": 42, "ownerHouseId": 3, "finderRequestId": 7, "acceptType": "Y",
		 "message": "좋은 매물입니다", "createdAt": "2025-01-15T01:30:00Z", "updatedAt": "2025-01-15T01:30:00Z",
		 "houseTitle": "역세권 원룸", "houseAddress": "서울시 마포구", "houseDeposit": 12000, "houseMonthlyRent": 50}
	]`)

	status, body := getPage(t, "/finder/contacts", http.Header{"Authorization": {"Bearer integration"}})

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `href="/finder/contacts/42"`)
	assert.Contains(t, body, "12,000만원")
	assert.Contains(t, body, "50만원")
	assert.Contains(t, body, "2025년 1월 15일 오전 10:30")

	fakeFinderAPI.mu.Lock()
	assert.Equal(t, "Bearer integration", fakeFinderAPI.lastAuth)
	fakeFinderAPI.mu.Unlock()
}

func TestIntegration_ContactsEmpty(t *testing.T) {
	setFinderAPIResponse(http.StatusOK, `[]`)

	status, body := getPage(t, "/finder/contacts", nil)

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "아직 컨택한 임대인이 없습니다")
}

func TestIntegration_ContactsBackendError(t *testing.T) {
	setFinderAPIResponse(http.StatusServiceUnavailable, `{"message": "잠시 후 다시 시도해주세요"}`)

	status, body := getPage(t, "/finder/contacts", nil)

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "잠시 후 다시 시도해주세요")
}

func TestIntegration_ServiceAPIUnknownMethod(t *testing.T) {
	payload, _ := json.Marshal(map[string]string{"method": "nope"})
	resp, err := http.Post(testServiceApiURL+"/api", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
