package home

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
)

// GetHomeContent handles the dashboard endpoints under /home/:section.
// Content is static by design: it doubles as the degraded-mode sample data
// clients fall back to when the store is unreachable.
func GetHomeContent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	section := strings.ToLower(ps.ByName("section"))

	var (
		data interface{}
		err  error
	)

	switch section {
	case "machines":
		data, err = getFeaturedMachines()
	case "types":
		data, err = getMachineTypes()
	case "seasonal-tips":
		data, err = getSeasonalTips()
	case "locations":
		data, err = getOperatorLocations()
	default:
		http.Error(w, "Invalid home section", http.StatusNotFound)
		return
	}

	if err != nil {
		http.Error(w, "Failed to fetch data: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

// getFeaturedMachines returns the machines highlighted on the landing page
func getFeaturedMachines() ([]map[string]interface{}, error) {
	return []map[string]interface{}{
		{"id": 1, "name": "Rajesh's Cool Tractor 🚜", "operator": "Rajesh Kumar", "type": "Tractor", "rating": 4.8},
		{"id": 2, "name": "The Harvest Beast 🌾", "operator": "Suresh Singh", "type": "Harvester", "rating": 4.9},
		{"id": 4, "name": "Seed Rocket 🚀", "operator": "Vikram Yadav", "type": "Seeder", "rating": 4.6},
	}, nil
}

func getMachineTypes() ([]string, error) {
	return []string{
		"Tractor",
		"Harvester",
		"Thresher",
		"Seeder",
		"Other",
	}, nil
}

// getSeasonalTips returns a list of seasonal field-work tips
func getSeasonalTips() ([]string, error) {
	return []string{
		"🌾 Book harvesters early — rabi season slots fill fast",
		"🚜 Tractor rates drop mid-week in most districts",
		"⚡ Threshing right after harvest cuts grain loss",
	}, nil
}

// getOperatorLocations returns basic location info for mapping
func getOperatorLocations() ([]map[string]string, error) {
	return []map[string]string{
		{"operator": "Rajesh Kumar", "region": "Haryana"},
		{"operator": "Suresh Singh", "region": "Punjab"},
		{"operator": "Amit Sharma", "region": "Uttar Pradesh"},
	}, nil
}
