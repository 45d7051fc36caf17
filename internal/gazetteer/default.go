package gazetteer

import "github.com/sandpointevents/event-pipeline/internal/event"

// Default returns the built-in Sandpoint-area tables. Deployments covering
// another town overlay these via Load with a YAML file.
func Default() *Tables {
	return &Tables{
		Venues: map[string]event.Venue{
			"panida theater": {
				Name:    "Panida Theater",
				Address: "300 N First Ave",
				City:    "Sandpoint",
				State:   "ID",
				ZipCode: "83864",
				Phone:   "(208) 263-9191",
				Website: "https://www.panida.org",
			},
			"the tervan": {
				Name:    "The Tervan",
				Address: "411 Cedar St",
				City:    "Sandpoint",
				State:   "ID",
			},
			"connie's lounge": {
				Name:    "Connie's Lounge",
				Address: "323 Cedar St",
				City:    "Sandpoint",
				State:   "ID",
			},
			"eichardt's pub": {
				Name:    "Eichardt's Pub",
				Address: "212 Cedar St",
				City:    "Sandpoint",
				State:   "ID",
				Phone:   "(208) 263-4005",
			},
			"matchwood brewing": {
				Name:    "Matchwood Brewing Company",
				Address: "513 Oak St",
				City:    "Sandpoint",
				State:   "ID",
				Website: "https://www.matchwoodbrewing.com",
			},
			"schweitzer": {
				Name:    "Schweitzer Mountain Resort",
				Address: "10000 Schweitzer Mountain Rd",
				City:    "Sandpoint",
				State:   "ID",
				Website: "https://www.schweitzer.com",
			},
			"farmin park": {
				Name:    "Farmin Park",
				Address: "300 N Third Ave",
				City:    "Sandpoint",
				State:   "ID",
			},
			"sandpoint library": {
				Name:    "Sandpoint Library",
				Address: "1407 Cedar St",
				City:    "Sandpoint",
				State:   "ID",
				Phone:   "(208) 263-6930",
			},
			"bonner county fairgrounds": {
				Name:    "Bonner County Fairgrounds",
				Address: "4203 N Boyer Ave",
				City:    "Sandpoint",
				State:   "ID",
			},
			"city beach": {
				Name:    "Sandpoint City Beach",
				Address: "58 Bridge St",
				City:    "Sandpoint",
				State:   "ID",
			},
			"pend d'oreille winery": {
				Name:    "Pend d'Oreille Winery",
				Address: "301 Cedar St",
				City:    "Sandpoint",
				State:   "ID",
			},
			"heartwood center": {
				Name:    "Heartwood Center",
				Address: "615 Oak St",
				City:    "Sandpoint",
				State:   "ID",
			},
		},
		TagSynonyms: map[string]string{
			"music":          "music",
			"live music":     "music",
			"live-music":     "music",
			"concert":        "music",
			"concerts":       "music",
			"art":            "arts",
			"arts":           "arts",
			"art & culture":  "arts",
			"theater":        "theater",
			"theatre":        "theater",
			"film":           "film",
			"movie":          "film",
			"movies":         "film",
			"community":      "community",
			"family":         "family",
			"kids":           "family",
			"children":       "family",
			"outdoors":       "outdoors",
			"outdoor":        "outdoors",
			"recreation":     "outdoors",
			"sports":         "sports",
			"sport":          "sports",
			"food":           "food-drink",
			"food & drink":   "food-drink",
			"dining":         "food-drink",
			"drinks":         "food-drink",
			"market":         "market",
			"farmers market": "market",
			"education":      "education",
			"class":          "education",
			"workshop":       "education",
			"fundraiser":     "fundraiser",
			"benefit":        "fundraiser",
			"charity":        "fundraiser",
			"holiday":        "holiday",
			"seasonal":       "holiday",
			"trivia":         "games",
			"games":          "games",
			"bingo":          "games",
		},
		TagKeywords: map[string]string{
			"band":       "music",
			"music":      "music",
			"concert":    "music",
			"trio":       "music",
			"quartet":    "music",
			"open mic":   "music",
			"gallery":    "arts",
			"painting":   "arts",
			"artist":     "arts",
			"play":       "theater",
			"theater":    "theater",
			"film":       "film",
			"movie":      "film",
			"screening":  "film",
			"kids":       "family",
			"family":     "family",
			"children":   "family",
			"hike":       "outdoors",
			"ski":        "outdoors",
			"trail":      "outdoors",
			"race":       "sports",
			"tournament": "sports",
			"dinner":     "food-drink",
			"tasting":    "food-drink",
			"brunch":     "food-drink",
			"market":     "market",
			"class":      "education",
			"workshop":   "education",
			"lecture":    "education",
			"fundraiser": "fundraiser",
			"benefit":    "fundraiser",
			"trivia":     "games",
			"bingo":      "games",
		},
		Sources: map[string]string{
			"sandpointonline":        "Sandpoint Online",
			"sandpoint-online":       "Sandpoint Online",
			"sandpoint online":       "Sandpoint Online",
			"sandpoint_online":       "Sandpoint Online",
			"eventbrite":             "Eventbrite",
			"visitsandpoint":         "Visit Sandpoint",
			"visit-sandpoint":        "Visit Sandpoint",
			"cityofsandpoint":        "City of Sandpoint",
			"city-of-sandpoint":      "City of Sandpoint",
			"sandpoint.gov":          "City of Sandpoint",
			"chamber":                "Greater Sandpoint Chamber of Commerce",
			"sandpointchamber":       "Greater Sandpoint Chamber of Commerce",
			"bonnercountydailybee":   "Bonner County Daily Bee",
			"dailybee":               "Bonner County Daily Bee",
			"krfy":                   "KRFY 88.5 FM",
			"panida":                 "Panida Theater",
			"panida theater":         "Panida Theater",
			"schweitzer":             "Schweitzer Mountain Resort",
			"sandpoint reader":       "Sandpoint Reader",
			"sandpointreader":        "Sandpoint Reader",
		},
		GenericLocations: []string{
			"downtown",
			"various",
			"citywide",
			"city-wide",
			"online",
			"virtual",
			"multiple",
			"tba",
			"to be announced",
			"to be determined",
			"all over",
			"everywhere",
		},
		DefaultReferenceURL: map[string]string{
			"Sandpoint Online": "https://sandpointonline.com/current/index.shtml",
		},
		ImageExpected: map[string]bool{
			"Eventbrite":     true,
			"Panida Theater": true,
		},
	}
}
