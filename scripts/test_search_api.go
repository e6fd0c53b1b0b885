package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	return resp, respBody, nil
}

func runStep(name, method, url string, body interface{}) map[string]interface{} {
	color.Cyan("→ %s", name)
	resp, respBody, err := sendRequest(method, url, body)
	if err != nil {
		color.Red("  request failed: %v", err)
		os.Exit(1)
	}

	var decoded map[string]interface{}
	json.Unmarshal(respBody, &decoded)

	if resp.StatusCode >= 400 {
		color.Red("  HTTP %d", resp.StatusCode)
	} else {
		color.Green("  HTTP %d", resp.StatusCode)
	}
	prettyPrint(decoded)
	return decoded
}

func main() {
	color.Yellow("=== Search API smoke run ===")

	res := runStep("Search: 2 bedroom condo near MRT under RM3000", "POST", "/search", map[string]interface{}{
		"query": "2 bedroom condo near MRT under RM3000",
		"mode":  "rent",
	})

	key, _ := res["search_key"].(string)
	if key != "" {
		runStep("Accumulated results", "GET", "/search/results/"+key, nil)
		runStep("Clear results", "DELETE", "/search/results/"+key, nil)
	}

	runStep("Search: impossible filter triggers suggestions", "POST", "/search", map[string]interface{}{
		"query": "5 bedroom studio under RM100",
	})

	runStep("Proximity: KLCC corner", "GET", "/transit/proximity?lat=3.1588&lng=101.7133", nil)
	runStep("Stations: light rail only", "GET", "/transit/stations?type=light-rail", nil)

	color.Yellow("=== done ===")
}
