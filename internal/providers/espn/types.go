package espn

type scoreboardResponse struct {
	Events []eventResponse `json:"events"`
}

type eventResponse struct {
	ID           string                `json:"id"`
	Date         string                `json:"date"`
	Name         string                `json:"name"`
	ShortName    string                `json:"shortName"`
	Competitions []competitionResponse `json:"competitions"`
}

type competitionResponse struct {
	ID          string               `json:"id"`
	Competitors []competitorResponse `json:"competitors"`
	Situation   *situationResponse   `json:"situation"`
	Status      statusResponse       `json:"status"`
}

type competitorResponse struct {
	ID       string       `json:"id"`
	HomeAway string       `json:"homeAway"`
	Score    string       `json:"score"`
	Team     teamResponse `json:"team"`
}

type teamResponse struct {
	ID               string `json:"id"`
	Abbreviation     string `json:"abbreviation"`
	DisplayName      string `json:"displayName"`
	ShortDisplayName string `json:"shortDisplayName"`
}

type situationResponse struct {
	IsRedZone  bool              `json:"isRedZone"`
	Possession string            `json:"possession"`
	LastPlay   *lastPlayResponse `json:"lastPlay"`
}

type lastPlayResponse struct {
	ID          string            `json:"id"`
	Text        string            `json:"text"`
	ScoringPlay bool              `json:"scoringPlay"`
	Team        *playTeamResponse `json:"team"`
	Type        *playTypeResponse `json:"type"`
}

type playTeamResponse struct {
	ID string `json:"id"`
}

type playTypeResponse struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type statusResponse struct {
	Period       int                `json:"period"`
	DisplayClock string             `json:"displayClock"`
	Type         statusTypeResponse `json:"type"`
}

type statusTypeResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	State     string `json:"state"`
	Completed bool   `json:"completed"`
}
