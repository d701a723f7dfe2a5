package protocol

// Request is an outbound message.
type Request interface {
	Tag() OutTag

	// RequestID is the id reported alongside a failure to send the request.
	RequestID() int

	// Encode validates the request against the negotiated server version
	// and appends it to e. On a CapabilityError nothing is appended.
	Encode(e *Encoder, serverVersion int) error
}

// Advisor is implemented by requests with capability checks that are
// reported but do not stop the request.
type Advisor interface {
	Advisories(serverVersion int) []*CapabilityError
}

func header(e *Encoder, t OutTag, version int) {
	e.WriteInt(int(t))
	e.WriteInt(version)
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func orZero(c *Contract) *Contract {
	if c == nil {
		return &Contract{}
	}
	return c
}

// writeBagLegs writes the short combo leg form used by market data and
// historical requests.
func writeBagLegs(e *Encoder, c *Contract) {
	e.WriteInt(len(c.ComboLegs))
	for _, l := range c.ComboLegs {
		e.WriteInt(l.ConID)
		e.WriteInt(l.Ratio)
		e.WriteString(l.Action)
		e.WriteString(l.Exchange)
	}
}

func writeUnderComp(e *Encoder, u *UnderComp) {
	if u == nil {
		e.WriteBool(false)
		return
	}
	e.WriteBool(true)
	e.WriteInt(u.ConID)
	e.WriteFloat(u.Delta)
	e.WriteFloat(u.Price)
}

// idOnly encodes the many messages that carry just a version and one id.
func idOnly(e *Encoder, t OutTag, id int) {
	header(e, t, 1)
	e.WriteInt(id)
}

type CancelMktData struct{ TickerID int }

func (r *CancelMktData) Tag() OutTag    { return OutCancelMktData }
func (r *CancelMktData) RequestID() int { return r.TickerID }
func (r *CancelMktData) Encode(e *Encoder, sv int) error {
	idOnly(e, r.Tag(), r.TickerID)
	return nil
}

type CancelOrder struct{ OrderID int }

func (r *CancelOrder) Tag() OutTag    { return OutCancelOrder }
func (r *CancelOrder) RequestID() int { return r.OrderID }
func (r *CancelOrder) Encode(e *Encoder, sv int) error {
	idOnly(e, r.Tag(), r.OrderID)
	return nil
}

type ReqOpenOrders struct{}

func (r *ReqOpenOrders) Tag() OutTag    { return OutReqOpenOrders }
func (r *ReqOpenOrders) RequestID() int { return NoValidID }
func (r *ReqOpenOrders) Encode(e *Encoder, sv int) error {
	header(e, r.Tag(), 1)
	return nil
}

type ReqAllOpenOrders struct{}

func (r *ReqAllOpenOrders) Tag() OutTag    { return OutReqAllOpenOrders }
func (r *ReqAllOpenOrders) RequestID() int { return NoValidID }
func (r *ReqAllOpenOrders) Encode(e *Encoder, sv int) error {
	header(e, r.Tag(), 1)
	return nil
}

// ReqAutoOpenOrders binds orders placed in TWS to this client. Only valid
// for client id 0.
type ReqAutoOpenOrders struct{ AutoBind bool }

func (r *ReqAutoOpenOrders) Tag() OutTag    { return OutReqAutoOpenOrders }
func (r *ReqAutoOpenOrders) RequestID() int { return NoValidID }
func (r *ReqAutoOpenOrders) Encode(e *Encoder, sv int) error {
	header(e, r.Tag(), 1)
	e.WriteBool(r.AutoBind)
	return nil
}

type ReqIDs struct{ NumIDs int }

func (r *ReqIDs) Tag() OutTag    { return OutReqIDs }
func (r *ReqIDs) RequestID() int { return NoValidID }
func (r *ReqIDs) Encode(e *Encoder, sv int) error {
	idOnly(e, r.Tag(), r.NumIDs)
	return nil
}

type ReqNewsBulletins struct{ AllMsgs bool }

func (r *ReqNewsBulletins) Tag() OutTag    { return OutReqNewsBulletins }
func (r *ReqNewsBulletins) RequestID() int { return NoValidID }
func (r *ReqNewsBulletins) Encode(e *Encoder, sv int) error {
	header(e, r.Tag(), 1)
	e.WriteBool(r.AllMsgs)
	return nil
}

type CancelNewsBulletins struct{}

func (r *CancelNewsBulletins) Tag() OutTag    { return OutCancelNewsBulletins }
func (r *CancelNewsBulletins) RequestID() int { return NoValidID }
func (r *CancelNewsBulletins) Encode(e *Encoder, sv int) error {
	header(e, r.Tag(), 1)
	return nil
}

// SetServerLogLevel sets the gateway's API log verbosity, 1 (system)
// through 5 (detail).
type SetServerLogLevel struct{ Level int }

func (r *SetServerLogLevel) Tag() OutTag    { return OutSetServerLogLevel }
func (r *SetServerLogLevel) RequestID() int { return NoValidID }
func (r *SetServerLogLevel) Encode(e *Encoder, sv int) error {
	idOnly(e, r.Tag(), r.Level)
	return nil
}

type ReqManagedAccts struct{}

func (r *ReqManagedAccts) Tag() OutTag    { return OutReqManagedAccts }
func (r *ReqManagedAccts) RequestID() int { return NoValidID }
func (r *ReqManagedAccts) Encode(e *Encoder, sv int) error {
	header(e, r.Tag(), 1)
	return nil
}

// RequestFA asks for financial advisor configuration. DataType is one of
// FAGroups, FAProfiles or FAAliases.
type RequestFA struct{ DataType int }

func (r *RequestFA) Tag() OutTag    { return OutReqFA }
func (r *RequestFA) RequestID() int { return r.DataType }
func (r *RequestFA) Encode(e *Encoder, sv int) error {
	if err := unsupported(sv, FeatureFinancialAdvisor, ""); err != nil {
		return err
	}
	idOnly(e, r.Tag(), r.DataType)
	return nil
}

type ReplaceFA struct {
	DataType int
	XML      string
}

func (r *ReplaceFA) Tag() OutTag    { return OutReplaceFA }
func (r *ReplaceFA) RequestID() int { return r.DataType }
func (r *ReplaceFA) Encode(e *Encoder, sv int) error {
	if err := unsupported(sv, FeatureFinancialAdvisor, ""); err != nil {
		return err
	}
	idOnly(e, r.Tag(), r.DataType)
	e.WriteString(r.XML)
	return nil
}

type ReqCurrentTime struct{}

func (r *ReqCurrentTime) Tag() OutTag    { return OutReqCurrentTime }
func (r *ReqCurrentTime) RequestID() int { return NoValidID }
func (r *ReqCurrentTime) Encode(e *Encoder, sv int) error {
	if err := unsupported(sv, FeatureCurrentTime, "  It does not support current time requests."); err != nil {
		return err
	}
	header(e, r.Tag(), 1)
	return nil
}

type ReqGlobalCancel struct{}

func (r *ReqGlobalCancel) Tag() OutTag    { return OutReqGlobalCancel }
func (r *ReqGlobalCancel) RequestID() int { return NoValidID }
func (r *ReqGlobalCancel) Encode(e *Encoder, sv int) error {
	if err := unsupported(sv, FeatureReqGlobalCancel, "  It does not support globalCancel requests."); err != nil {
		return err
	}
	header(e, r.Tag(), 1)
	return nil
}

// ReqMarketDataType switches between real time (1) and frozen (2) data.
type ReqMarketDataType struct{ Type int }

func (r *ReqMarketDataType) Tag() OutTag    { return OutReqMarketDataType }
func (r *ReqMarketDataType) RequestID() int { return NoValidID }
func (r *ReqMarketDataType) Encode(e *Encoder, sv int) error {
	if err := unsupported(sv, FeatureReqMarketDataType, "  It does not support marketDataType requests."); err != nil {
		return err
	}
	idOnly(e, r.Tag(), r.Type)
	return nil
}

type VerifyRequest struct {
	APIName    string
	APIVersion string
}

func (r *VerifyRequest) Tag() OutTag    { return OutVerifyRequest }
func (r *VerifyRequest) RequestID() int { return NoValidID }
func (r *VerifyRequest) Encode(e *Encoder, sv int) error {
	if err := unsupported(sv, FeatureLinking, "  It does not support verification request."); err != nil {
		return err
	}
	header(e, r.Tag(), 1)
	e.WriteString(r.APIName)
	e.WriteString(r.APIVersion)
	return nil
}

type VerifyMessage struct{ APIData string }

func (r *VerifyMessage) Tag() OutTag    { return OutVerifyMessage }
func (r *VerifyMessage) RequestID() int { return NoValidID }
func (r *VerifyMessage) Encode(e *Encoder, sv int) error {
	if err := unsupported(sv, FeatureLinking, "  It does not support verification message sending."); err != nil {
		return err
	}
	header(e, r.Tag(), 1)
	e.WriteString(r.APIData)
	return nil
}

type QueryDisplayGroups struct{ ReqID int }

func (r *QueryDisplayGroups) Tag() OutTag    { return OutQueryDisplayGroups }
func (r *QueryDisplayGroups) RequestID() int { return NoValidID }
func (r *QueryDisplayGroups) Encode(e *Encoder, sv int) error {
	if err := unsupported(sv, FeatureLinking, "  It does not support queryDisplayGroups request."); err != nil {
		return err
	}
	idOnly(e, r.Tag(), r.ReqID)
	return nil
}

type SubscribeToGroupEvents struct {
	ReqID   int
	GroupID int
}

func (r *SubscribeToGroupEvents) Tag() OutTag    { return OutSubscribeToGroupEvents }
func (r *SubscribeToGroupEvents) RequestID() int { return NoValidID }
func (r *SubscribeToGroupEvents) Encode(e *Encoder, sv int) error {
	if err := unsupported(sv, FeatureLinking, "  It does not support subscribeToGroupEvents request."); err != nil {
		return err
	}
	idOnly(e, r.Tag(), r.ReqID)
	e.WriteInt(r.GroupID)
	return nil
}

type UpdateDisplayGroup struct {
	ReqID        int
	ContractInfo string
}

func (r *UpdateDisplayGroup) Tag() OutTag    { return OutUpdateDisplayGroup }
func (r *UpdateDisplayGroup) RequestID() int { return NoValidID }
func (r *UpdateDisplayGroup) Encode(e *Encoder, sv int) error {
	if err := unsupported(sv, FeatureLinking, "  It does not support updateDisplayGroup request."); err != nil {
		return err
	}
	idOnly(e, r.Tag(), r.ReqID)
	e.WriteString(r.ContractInfo)
	return nil
}

type UnsubscribeFromGroupEvents struct{ ReqID int }

func (r *UnsubscribeFromGroupEvents) Tag() OutTag    { return OutUnsubscribeFromGroupEvents }
func (r *UnsubscribeFromGroupEvents) RequestID() int { return NoValidID }
func (r *UnsubscribeFromGroupEvents) Encode(e *Encoder, sv int) error {
	if err := unsupported(sv, FeatureLinking, "  It does not support unsubscribeFromGroupEvents request."); err != nil {
		return err
	}
	idOnly(e, r.Tag(), r.ReqID)
	return nil
}

// StartAPI completes session setup once the server version is known.
type StartAPI struct{ ClientID int }

func (r *StartAPI) Tag() OutTag    { return OutStartAPI }
func (r *StartAPI) RequestID() int { return NoValidID }
func (r *StartAPI) Encode(e *Encoder, sv int) error {
	idOnly(e, r.Tag(), r.ClientID)
	return nil
}
