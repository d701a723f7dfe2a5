package protocol

// Inbound events delivered to a Sink. Each type corresponds to one inbound
// message kind (tick price also produces a TickSize for bid, ask and last).

type TickPrice struct {
	TickerID       int     `json:"tickerId"`
	Field          int     `json:"field"`
	Price          float64 `json:"price"`
	CanAutoExecute bool    `json:"canAutoExecute"`
}

type TickSize struct {
	TickerID int `json:"tickerId"`
	Field    int `json:"field"`
	Size     int `json:"size"`
}

// TickOptionComputation carries option model values. Values outside their
// valid domain arrive unset.
type TickOptionComputation struct {
	TickerID   int          `json:"tickerId"`
	Field      int          `json:"field"`
	ImpliedVol Opt[float64] `json:"impliedVol"`
	Delta      Opt[float64] `json:"delta"`
	OptPrice   Opt[float64] `json:"optPrice"`
	PVDividend Opt[float64] `json:"pvDividend"`
	Gamma      Opt[float64] `json:"gamma"`
	Vega       Opt[float64] `json:"vega"`
	Theta      Opt[float64] `json:"theta"`
	UndPrice   Opt[float64] `json:"undPrice"`
}

type TickGeneric struct {
	TickerID int     `json:"tickerId"`
	Field    int     `json:"field"`
	Value    float64 `json:"value"`
}

type TickString struct {
	TickerID int    `json:"tickerId"`
	Field    int    `json:"field"`
	Value    string `json:"value"`
}

type TickEFP struct {
	TickerID             int     `json:"tickerId"`
	Field                int     `json:"field"`
	BasisPoints          float64 `json:"basisPoints"`
	FormattedBasisPoints string  `json:"formattedBasisPoints"`
	ImpliedFuturesPrice  float64 `json:"impliedFuturesPrice"`
	HoldDays             int     `json:"holdDays"`
	FutureExpiry         string  `json:"futureExpiry"`
	DividendImpact       float64 `json:"dividendImpact"`
	DividendsToExpiry    float64 `json:"dividendsToExpiry"`
}

type OrderStatus struct {
	OrderID       int     `json:"orderId"`
	Status        string  `json:"status"`
	Filled        int     `json:"filled"`
	Remaining     int     `json:"remaining"`
	AvgFillPrice  float64 `json:"avgFillPrice"`
	PermID        int     `json:"permId"`
	ParentID      int     `json:"parentId"`
	LastFillPrice float64 `json:"lastFillPrice"`
	ClientID      int     `json:"clientId"`
	WhyHeld       string  `json:"whyHeld"`
}

type OpenOrder struct {
	OrderID  int        `json:"orderId"`
	Contract Contract   `json:"contract"`
	Order    Order      `json:"order"`
	State    OrderState `json:"state"`
}

type AccountValue struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	Currency string `json:"currency"`
	Account  string `json:"account"`
}

type PortfolioValue struct {
	Contract      Contract `json:"contract"`
	Position      int      `json:"position"`
	MarketPrice   float64  `json:"marketPrice"`
	MarketValue   float64  `json:"marketValue"`
	AverageCost   float64  `json:"averageCost"`
	UnrealizedPNL float64  `json:"unrealizedPnl"`
	RealizedPNL   float64  `json:"realizedPnl"`
	Account       string   `json:"account"`
}

type AccountUpdateTime struct {
	Timestamp string `json:"timestamp"`
}

type AccountDownloadEnd struct {
	Account string `json:"account"`
}

// ErrorMessage is an error or informational notice. ID is the request the
// notice refers to, or NoValidID.
type ErrorMessage struct {
	ID      int    `json:"id"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type NextValidID struct {
	OrderID int `json:"orderId"`
}

type ContractData struct {
	ReqID   int             `json:"reqId"`
	Details ContractDetails `json:"details"`
}

type ContractDataEnd struct {
	ReqID int `json:"reqId"`
}

type ExecutionData struct {
	ReqID     int       `json:"reqId"`
	Contract  Contract  `json:"contract"`
	Execution Execution `json:"execution"`
}

type ExecutionDataEnd struct {
	ReqID int `json:"reqId"`
}

type MarketDepth struct {
	TickerID    int     `json:"tickerId"`
	Position    int     `json:"position"`
	MarketMaker string  `json:"marketMaker,omitempty"` // L2 only
	Operation   int     `json:"operation"`
	Side        int     `json:"side"`
	Price       float64 `json:"price"`
	Size        int     `json:"size"`
}

type NewsBulletin struct {
	MsgID    int    `json:"msgId"`
	MsgType  int    `json:"msgType"`
	Message  string `json:"message"`
	Exchange string `json:"exchange"`
}

type ManagedAccounts struct {
	Accounts string `json:"accounts"` // comma separated
}

type ReceiveFA struct {
	DataType int    `json:"dataType"`
	XML      string `json:"xml"`
}

type HistoricalBar struct {
	ReqID int `json:"reqId"`
	Bar   Bar `json:"bar"`
}

// HistoricalDataEnd follows the last bar of a historical request.
type HistoricalDataEnd struct {
	ReqID int    `json:"reqId"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// Marker returns the end-of-data marker in the gateway's "finished-start-end"
// form.
func (e HistoricalDataEnd) Marker() string {
	if e.Start == "" && e.End == "" {
		return "finished"
	}
	return "finished-" + e.Start + "-" + e.End
}

type ScannerParameters struct {
	XML string `json:"xml"`
}

type ScannerData struct {
	ReqID      int             `json:"reqId"`
	Rank       int             `json:"rank"`
	Details    ContractDetails `json:"details"`
	Distance   string          `json:"distance"`
	Benchmark  string          `json:"benchmark"`
	Projection string          `json:"projection"`
	Legs       string          `json:"legs"`
}

type ScannerDataEnd struct {
	ReqID int `json:"reqId"`
}

type CurrentTime struct {
	Time int64 `json:"time"` // seconds since the epoch
}

type RealTimeBar struct {
	ReqID  int     `json:"reqId"`
	Time   int64   `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
	WAP    float64 `json:"wap"`
	Count  int     `json:"count"`
}

type FundamentalData struct {
	ReqID int    `json:"reqId"`
	Data  string `json:"data"`
}

type DeltaNeutralValidation struct {
	ReqID     int       `json:"reqId"`
	UnderComp UnderComp `json:"underComp"`
}

type TickSnapshotEnd struct {
	ReqID int `json:"reqId"`
}

type MarketDataType struct {
	ReqID int `json:"reqId"`
	Type  int `json:"type"` // 1 real time, 2 frozen
}

type Position struct {
	Account  string   `json:"account"`
	Contract Contract `json:"contract"`
	Position int      `json:"position"`
	AvgCost  float64  `json:"avgCost"`
}

type AccountSummary struct {
	ReqID    int    `json:"reqId"`
	Account  string `json:"account"`
	Tag      string `json:"tag"`
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

type AccountSummaryEnd struct {
	ReqID int `json:"reqId"`
}

type VerifyMessageAPI struct {
	Data string `json:"data"`
}

type VerifyCompleted struct {
	Successful bool   `json:"successful"`
	ErrorText  string `json:"errorText"`
}

type DisplayGroupList struct {
	ReqID  int    `json:"reqId"`
	Groups string `json:"groups"`
}

type DisplayGroupUpdated struct {
	ReqID        int    `json:"reqId"`
	ContractInfo string `json:"contractInfo"`
}
