// Command smoke walks a running server through the quote flow and checks
// that quotes land in Redis under the expected keys.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"royalstay/internal/shared/constants"

	"github.com/redis/go-redis/v9"
	"github.com/tidwall/gjson"
)

type StepResult struct {
	Name         string        `json:"name"`
	Status       int           `json:"status"`
	ResponseTime time.Duration `json:"response_time"`
	Success      bool          `json:"success"`
	Error        string        `json:"error,omitempty"`
}

type SmokeSuite struct {
	BaseURL  string
	DeviceID string
	client   *http.Client
	redis    *redis.Client
	Results  []StepResult
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080/api/v1", "API base url")
	redisAddr := flag.String("redis", "localhost:6379", "redis address")
	promo := flag.String("promo", "WELCOME10", "promo code to try")
	report := flag.String("report", "", "write results as JSON to this file")
	flag.Parse()

	suite := &SmokeSuite{
		BaseURL:  *baseURL,
		DeviceID: fmt.Sprintf("smoke-%d", time.Now().Unix()),
		client:   &http.Client{Timeout: 30 * time.Second},
		redis:    redis.NewClient(&redis.Options{Addr: *redisAddr}),
	}
	defer suite.redis.Close()

	ctx := context.Background()
	if err := suite.redis.Ping(ctx).Err(); err != nil {
		log.Fatalf("❌ Redis connection failed: %v", err)
	}
	fmt.Println("✅ Redis connection: OK")

	rooms := suite.step("List rooms", http.MethodGet, "/rooms?limit=1", nil)
	roomID := rooms.Get("data.rooms.0.id").String()
	if roomID == "" {
		log.Fatal("❌ No bookable room found, run the seeder first")
	}

	checkIn := time.Now().UTC().AddDate(0, 0, 14)
	quote := suite.step("Create quote", http.MethodPost, "/quotes", map[string]interface{}{
		"room_id":    roomID,
		"check_in":   checkIn.Format("2006-01-02"),
		"check_out":  checkIn.AddDate(0, 0, 2).Format("2006-01-02"),
		"room_count": 1,
		"adults":     2,
	})
	quoteID := quote.Get("data.id").String()
	if quoteID == "" {
		log.Fatal("❌ Quote was not created")
	}
	fmt.Printf("   💰 total %.2f\n", quote.Get("data.display.total").Float())

	if n, err := suite.redis.Exists(ctx, constants.BuildQuoteKey(quoteID)).Result(); err != nil || n == 0 {
		suite.fail("Quote stored in Redis", fmt.Sprintf("key %s missing", constants.BuildQuoteKey(quoteID)))
	} else {
		fmt.Println("   ✅ quote stored in Redis")
	}

	applied := suite.step("Apply promo", http.MethodPost, "/quotes/"+quoteID+"/promo", map[string]string{"code": *promo})
	fmt.Printf("   🏷  applied=%v message=%q total %.2f\n",
		applied.Get("data.promo_applied").Bool(),
		applied.Get("data.promo_message").String(),
		applied.Get("data.display.total").Float())

	removed := suite.step("Remove promo", http.MethodDelete, "/quotes/"+quoteID+"/promo", nil)
	if removed.Get("data.display.total").Float() != quote.Get("data.display.total").Float() {
		suite.fail("Promo removal restores price", "total differs from the undiscounted quote")
	}

	suite.generateReport(*report)
}

func (s *SmokeSuite) step(name, method, path string, body interface{}) gjson.Result {
	fmt.Printf("\n🔍 %s\n", name)

	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, s.BaseURL+path, reader)
	if err != nil {
		s.fail(name, err.Error())
		return gjson.Result{}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Device-ID", s.DeviceID)

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		s.fail(name, err.Error())
		return gjson.Result{}
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	result := StepResult{
		Name:         name,
		Status:       resp.StatusCode,
		ResponseTime: time.Since(start),
		Success:      resp.StatusCode < 400,
	}
	if !result.Success {
		result.Error = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, gjson.GetBytes(data, "message").String())
	}
	s.Results = append(s.Results, result)

	icon := "✅"
	if !result.Success {
		icon = "❌"
	}
	fmt.Printf("   %s HTTP %d in %v\n", icon, resp.StatusCode, result.ResponseTime)

	return gjson.ParseBytes(data)
}

func (s *SmokeSuite) fail(name, msg string) {
	s.Results = append(s.Results, StepResult{Name: name, Error: msg})
	fmt.Printf("   ❌ %s: %s\n", name, msg)
}

func (s *SmokeSuite) generateReport(path string) {
	passed := 0
	for _, r := range s.Results {
		if r.Error == "" {
			passed++
		}
	}

	fmt.Println("\n📊 SMOKE REPORT")
	fmt.Println("===============")
	fmt.Printf("Steps: %d, passed: %d\n", len(s.Results), passed)

	if path != "" {
		data, _ := json.MarshalIndent(s.Results, "", "  ")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			log.Printf("failed to write report: %v", err)
		} else {
			fmt.Printf("💾 Detailed results saved to %s\n", path)
		}
	}

	if passed != len(s.Results) {
		os.Exit(1)
	}
}
