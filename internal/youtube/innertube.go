package youtube

// Innertube API: constants and response types.

const (
	defaultBaseURL   = "https://www.youtube.com"
	watchPath        = "/watch?v="
	playerPath       = "/youtubei/v1/player?key="
	androidVersion   = "20.10.38"
	androidUserAgent = "com.google.android.youtube/" + androidVersion + " (Linux; U; Android 11) gzip"
)

// Playability reasons with a dedicated outcome.
const (
	reasonUnavailable   = "This video is unavailable"
	reasonBot           = "Sign in to confirm you’re not a bot"
	reasonAgeRestricted = "This video may be inappropriate for some users."
)

type playerReq struct {
	Context playerCtx `json:"context"`
	VideoID string    `json:"videoId"`
}

type playerCtx struct {
	Client playerClient `json:"client"`
}

type playerClient struct {
	ClientName    string `json:"clientName"`
	ClientVersion string `json:"clientVersion"`
}

func androidPlayerReq(videoID string) playerReq {
	return playerReq{
		Context: playerCtx{Client: playerClient{ClientName: "ANDROID", ClientVersion: androidVersion}},
		VideoID: videoID,
	}
}

type playerResp struct {
	PlayabilityStatus *playabilityStatus `json:"playabilityStatus"`
	Captions          *struct {
		Renderer *captionsRenderer `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type playabilityStatus struct {
	Status      string `json:"status"`
	Reason      string `json:"reason"`
	ErrorScreen *struct {
		PlayerErrorMessageRenderer *struct {
			Subreason *struct {
				Runs []textRun `json:"runs"`
			} `json:"subreason"`
		} `json:"playerErrorMessageRenderer"`
	} `json:"errorScreen"`
}

func (p *playabilityStatus) subreasons() []string {
	if p.ErrorScreen == nil || p.ErrorScreen.PlayerErrorMessageRenderer == nil ||
		p.ErrorScreen.PlayerErrorMessageRenderer.Subreason == nil {
		return nil
	}
	var out []string
	for _, run := range p.ErrorScreen.PlayerErrorMessageRenderer.Subreason.Runs {
		if run.Text != "" {
			out = append(out, run.Text)
		}
	}
	return out
}

type captionsRenderer struct {
	CaptionTracks        []captionTrack        `json:"captionTracks"`
	TranslationLanguages []translationLanguage `json:"translationLanguages"`
}

type captionTrack struct {
	BaseURL        string   `json:"baseUrl"`
	Name           textRuns `json:"name"`
	LanguageCode   string   `json:"languageCode"`
	Kind           string   `json:"kind"` // "asr" = auto-generated
	IsTranslatable bool     `json:"isTranslatable"`
}

type translationLanguage struct {
	LanguageCode string   `json:"languageCode"`
	LanguageName textRuns `json:"languageName"`
}

type textRun struct {
	Text string `json:"text"`
}

type textRuns struct {
	SimpleText string    `json:"simpleText"`
	Runs       []textRun `json:"runs"`
}

func (t textRuns) String() string {
	if len(t.Runs) > 0 {
		return t.Runs[0].Text
	}
	return t.SimpleText
}

// --- Timedtext XML types ---

type timedText struct {
	Lines []timedLine `xml:"text"`
}

type timedLine struct {
	Text  string `xml:",chardata"`
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
}
