package provider

import (
	"fmt"
	"strings"

	"along/internal/domain"
)

// originText rewrites the current-location marker into coordinates the model can use.
func originText(q RouteQuery) string {
	origin := strings.TrimSpace(q.Origin)
	if origin == domain.CurrentLocationText && q.Coordinates != nil {
		return fmt.Sprintf("my current location at coordinates %v, %v", q.Coordinates.Latitude, q.Coordinates.Longitude)
	}
	return fmt.Sprintf("%q", origin)
}

func exampleFor(region domain.Region) string {
	switch region {
	case domain.RegionAbuja:
		return `1. Walk to the bus stop at Wuse Market main gate. (Approx. 5 mins)
        2. Board a bus heading towards Berger. (Approx. 15 mins)
        3. Alight at Jabi Lake Mall junction and take a keke to the mall entrance. (Approx. 5 mins)`
	default:
		return `1. Walk to the nearest bus stop at Berger. (Approx. 5 mins)
        2. Take a danfo bus heading towards Ikeja. (Approx. 20 mins)
        3. Alight at Ikeja Along and take a keke napep to your final destination. (Approx. 10 mins)`
	}
}

// BuildPrompt renders the route request sent to the model.
func BuildPrompt(q RouteQuery) string {
	return fmt.Sprintf(`
        You are a local transport expert for %[1]s, Nigeria.
        Provide a concise, step-by-step public transportation route from %[2]s to %[3]q in %[1]s, Nigeria.
        Assume the user is looking for common local transport options like danfo buses, BRT, keke napep (tricycles), or okada (motorcycle taxis) where applicable.
        Follow these strict instructions for the response format:
        1. Provide the route as a short, numbered list of simple actions (maximum 4-6 steps).
        2. Each step must be a single, clear instruction that starts with an action verb (e.g., "Walk", "Take", "Board", "Alight").
        3. Mention the mode of transport and an estimated time or key landmark.
        4. Do not add extra explanations, summaries, cost estimates or pleasantries.
        5. Do not use markdown formatting like bold or italics.

        Example format:
        %[4]s
    `, q.Region, originText(q), strings.TrimSpace(q.Destination), exampleFor(q.Region))
}
