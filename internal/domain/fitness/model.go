package fitness

import "encoding/json"

// Mode selects how the current measurements are compared.
type Mode string

// Mode values. Any token other than "history" selects peer-average mode.
const (
	ModeHistory     Mode = "history"
	ModePeerAverage Mode = "peer"
)

// ResolveMode maps a request token to a Mode.
func ResolveMode(token string) Mode {
	if Mode(token) == ModeHistory {
		return ModeHistory
	}
	return ModePeerAverage
}

// Request is the payload accepted by the analyze operation.
type Request struct {
	Mode   string         `json:"mode"`
	Age    Value          `json:"age"`
	Gender string         `json:"gender"`
	Height Value          `json:"height"`
	Weight Value          `json:"weight"`
	Curr   MeasurementSet `json:"curr"`
	Prev   MeasurementSet `json:"prev"`
}

// Dataset is one chart series. Styling fields follow Chart.js naming.
type Dataset struct {
	Label                string             `json:"label"`
	Data                 []json.Number      `json:"data"`
	TableData            []ClassifiedMetric `json:"tableData,omitempty"`
	BackgroundColor      string             `json:"backgroundColor,omitempty"`
	BorderColor          string             `json:"borderColor,omitempty"`
	PointBackgroundColor string             `json:"pointBackgroundColor,omitempty"`
	BorderWidth          int                `json:"borderWidth,omitempty"`
	BorderDash           []int              `json:"borderDash,omitempty"`
	Fill                 *bool              `json:"fill,omitempty"`
	PointRadius          *int               `json:"pointRadius,omitempty"`
}

// Report is the result of one analysis.
type Report struct {
	Message     string             `json:"message"`
	SubMessage  string             `json:"subMessage"`
	BMIInfo     *BMIResult         `json:"bmiInfo"`
	Datasets    []Dataset          `json:"datasets"`
	TableData   []ClassifiedMetric `json:"tableData"`
	MissingData bool               `json:"missingData"`

	// Mode, Bracket and Reference describe how the report was resolved.
	Mode      Mode          `json:"-"`
	Bracket   AgeBracket    `json:"-"`
	Reference ReferenceCell `json:"-"`
}

// UsageKey groups produced reports. It never carries measurement values.
type UsageKey struct {
	Mode    Mode       `json:"mode"`
	Gender  Gender     `json:"gender"`
	Bracket AgeBracket `json:"bracket"`
}

// UsageCount is the number of reports produced for a key.
type UsageCount struct {
	UsageKey
	Count int64 `json:"count"`
}
