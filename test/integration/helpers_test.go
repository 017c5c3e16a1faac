//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/msto63/kairos/internal/kairos/server"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// TestConfig holds the addresses of a running kairos server
type TestConfig struct {
	GRPCAddr string
	HTTPAddr string
	Market   string
}

func getTestConfig() TestConfig {
	return TestConfig{
		GRPCAddr: getEnv("TEST_KAIROS_GRPC_ADDR", "localhost:9300"),
		HTTPAddr: getEnv("TEST_KAIROS_HTTP_ADDR", "localhost:8300"),
		Market:   getEnv("TEST_KAIROS_MARKET", "XTST"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// skipIfServiceUnavailable skips the test if the server is not reachable
func skipIfServiceUnavailable(t *testing.T, addr string, what string) {
	t.Helper()
	if !isServiceAvailable(addr) {
		t.Skipf("Skipping: kairos %s endpoint not available at %s", what, addr)
	}
}

// isServiceAvailable checks if a TCP connection can be established
func isServiceAvailable(addr string) bool {
	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// dialClient creates a kairos gRPC client that is closed with the test
func dialClient(t *testing.T, addr string) *server.Client {
	t.Helper()

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("Failed to connect to %s: %v", addr, err)
	}
	t.Cleanup(func() {
		conn.Close()
	})
	return server.NewClient(conn)
}

// testContext returns a context with timeout for tests
func testContext(t *testing.T, timeout time.Duration) (context.Context, context.CancelFunc) {
	t.Helper()
	return context.WithTimeout(context.Background(), timeout)
}

// getJSON performs a GET against the REST API and decodes the body into out
func getJSON(t *testing.T, baseURL, path string, out interface{}) int {
	t.Helper()

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(fmt.Sprintf("http://%s/api/v1%s", baseURL, path))
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			t.Fatalf("decode %s: %v (%s)", path, err, body)
		}
	}
	return resp.StatusCode
}

// requireNoError fails the test if err is not nil
func requireNoError(t *testing.T, err error, msg string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: %v", msg, err)
	}
}

// requireEqual fails the test if expected != actual
func requireEqual(t *testing.T, expected, actual interface{}, msg string) {
	t.Helper()
	if expected != actual {
		t.Fatalf("%s: expected %v, got %v", msg, expected, actual)
	}
}

// logTestStart logs the start of a test with endpoint info
func logTestStart(t *testing.T, area, testName string) {
	t.Helper()
	t.Logf("=== %s: %s ===", area, testName)
}
