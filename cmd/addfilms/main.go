// Command addfilms seeds a running Paradiso instance with a fixed film list.
// Each title is resolved through the search endpoint and submitted by IMDb
// id; films already in the catalog count as added.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"
)

type seedFilm struct {
	Title string
	Year  string
}

var films = []seedFilm{
	{"Border", "2018"},
	{"The Wailing", "2016"},
	{"Train to Busan", "2016"},
	{"The Babadook", "2014"},
	{"A Quiet Place", "2018"},
	{"Night of The Demon", ""},
	{"What We Do In The Shadows", ""},
	{"Candyman", ""},
	{"Trick 'r Treat", ""},
	{"Eyes Wide Shut", ""},
	{"Le Temps des Gitans", ""},
	{"A White White Day", ""},
	{"Upstream Color", ""},
	{"Platoon", ""},
	{"Pan's Labyrinth", ""},
	{"Tinker Tailor Soldier Spy", ""},
	{"The Last Temptation of Christ", ""},
	{"The Third Man", ""},
	{"Conclave", ""},
	{"Life of Brian", ""},
	{"Brazil", ""},
	{"Barry Lyndon", ""},
	{"Lawrence of Arabia", ""},
}

type searchResponse struct {
	Results []struct {
		ImdbID string `json:"imdbID"`
		Title  string `json:"Title"`
		Year   string `json:"Year"`
	} `json:"results"`
	Error string `json:"error"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func main() {
	baseURL := os.Getenv("PARADISO_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	client := &http.Client{Timeout: 30 * time.Second}

	added := 0
	failed := 0

	log.Printf("Seeding film catalog at %s", baseURL)

	for _, film := range films {
		if addFilm(client, baseURL, film) {
			added++
		} else {
			failed++
		}
		// Stay polite to the metadata provider behind the add endpoint
		time.Sleep(500 * time.Millisecond)
	}

	log.Printf("Done: %d added, %d failed, %d total", added, failed, len(films))
	if failed > 0 {
		os.Exit(1)
	}
}

func addFilm(client *http.Client, baseURL string, film seedFilm) bool {
	query := film.Title
	if film.Year != "" {
		query = film.Title + " " + film.Year
	}

	log.Printf("Searching for: %s", query)

	resp, err := client.Get(baseURL + "/api/search?q=" + url.QueryEscape(query))
	if err != nil {
		log.Printf("  search failed: %v", err)
		return false
	}
	defer resp.Body.Close()

	var search searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		log.Printf("  bad search response: %v", err)
		return false
	}
	if len(search.Results) == 0 {
		log.Printf("  not found: %s", film.Title)
		return false
	}

	best := search.Results[0]
	log.Printf("  found: %s (%s) %s", best.Title, best.Year, best.ImdbID)

	body, _ := json.Marshal(map[string]string{"imdbId": best.ImdbID})
	addResp, err := client.Post(baseURL+"/api/films", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("  add failed: %v", err)
		return false
	}
	defer addResp.Body.Close()

	switch addResp.StatusCode {
	case http.StatusOK:
		log.Printf("  added")
		return true
	case http.StatusConflict:
		log.Printf("  already in catalog")
		return true
	default:
		raw, _ := io.ReadAll(addResp.Body)
		var errResp errorResponse
		detail := fmt.Sprintf("status %d", addResp.StatusCode)
		if json.Unmarshal(raw, &errResp) == nil && errResp.Error != "" {
			detail = errResp.Error
		}
		log.Printf("  failed to add: %s", detail)
		return false
	}
}
