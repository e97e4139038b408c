package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"agritrust/config"
)

// placesResponse is the slice of the Google Places autocomplete response
// we forward to clients.
type placesResponse struct {
	Predictions []struct {
		Description string `json:"description"`
		PlaceID     string `json:"place_id"`
	} `json:"predictions"`
	Status string `json:"status"`
}

// PlacesAutocompleteHandler proxies address autocomplete so the API key
// never ships in the app.
func PlacesAutocompleteHandler(c *gin.Context) {
	input := c.Query("input")
	if input == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "input query parameter is required"})
		return
	}

	apiKey := config.AppConfig.GoogleAPIKey
	if apiKey == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "API authentication error"})
		return
	}

	endpoint := "https://maps.googleapis.com/maps/api/place/autocomplete/json?input=" +
		url.QueryEscape(input) + "&types=address&key=" + apiKey

	resp, err := http.Get(endpoint)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "please try again later"})
		return
	}
	defer resp.Body.Close()

	var places placesResponse
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "please try again later"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": places.Predictions})
}
