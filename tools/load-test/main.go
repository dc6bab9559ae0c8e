// Fires a burst of punch requests at a running API instance. Employee ids
// are read from /api/employees/public so the punches hit real directory
// records; each employee gets an "in" followed by an "out".
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

type employee struct {
	ID string `json:"_id"`
}

func main() {
	baseURL := "http://localhost:8080"
	concurrency := 50

	resp, err := http.Get(baseURL + "/api/employees/public")
	if err != nil {
		fmt.Printf("Could not list employees: %v\n", err)
		return
	}
	var employees []employee
	if err := json.NewDecoder(resp.Body).Decode(&employees); err != nil {
		resp.Body.Close()
		fmt.Printf("Could not decode employee list: %v\n", err)
		return
	}
	resp.Body.Close()

	if len(employees) == 0 {
		fmt.Println("No employees to punch; create some first.")
		return
	}

	totalRequests := len(employees) * 2
	fmt.Printf("Starting load test: %d employees (in+out each) against %s with concurrency %d\n",
		len(employees), baseURL, concurrency)

	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrency)

	var successCount int64
	var failCount int64

	startTime := time.Now()

	for _, e := range employees {
		wg.Add(1)
		sem <- struct{}{}

		go func(id string) {
			defer wg.Done()
			defer func() { <-sem }()

			for _, punchType := range []string{"in", "out"} {
				payload := []byte(fmt.Sprintf(`{"employeeId": %q, "type": %q}`, id, punchType))

				resp, err := http.Post(baseURL+"/api/attendance/punch", "application/json", bytes.NewBuffer(payload))
				if err != nil {
					atomic.AddInt64(&failCount, 1)
					continue
				}

				if resp.StatusCode == http.StatusCreated {
					atomic.AddInt64(&successCount, 1)
				} else {
					atomic.AddInt64(&failCount, 1)
				}
				resp.Body.Close()
			}
		}(e.ID)
	}

	wg.Wait()
	duration := time.Since(startTime)

	fmt.Println("\n--- Load Test Results ---")
	fmt.Printf("Total Duration: %v\n", duration)
	fmt.Printf("Total Requests: %d\n", totalRequests)
	fmt.Printf("Successful:     %d\n", successCount)
	fmt.Printf("Failed:         %d\n", failCount)
	fmt.Printf("Requests/Sec:   %.2f\n", float64(totalRequests)/duration.Seconds())
}
