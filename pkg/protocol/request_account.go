package protocol

// ReqAccountUpdates subscribes to account values and portfolio updates.
// AcctCode selects the account for advisor logins.
type ReqAccountUpdates struct {
	Subscribe bool
	AcctCode  string
}

func (r *ReqAccountUpdates) Tag() OutTag    { return OutReqAccountData }
func (r *ReqAccountUpdates) RequestID() int { return NoValidID }
func (r *ReqAccountUpdates) Encode(e *Encoder, sv int) error {
	header(e, r.Tag(), 2)
	e.WriteBool(r.Subscribe)
	if Supports(sv, FeatureAccountCode) {
		e.WriteString(r.AcctCode)
	}
	return nil
}

type ReqExecutions struct {
	ReqID  int
	Filter ExecutionFilter
}

func (r *ReqExecutions) Tag() OutTag    { return OutReqExecutions }
func (r *ReqExecutions) RequestID() int { return NoValidID }
func (r *ReqExecutions) Encode(e *Encoder, sv int) error {
	header(e, r.Tag(), 3)
	if Supports(sv, FeatureExecutionDataChain) {
		e.WriteInt(r.ReqID)
	}
	if Supports(sv, FeatureAccountCode) {
		f := r.Filter
		e.WriteInt(f.ClientID)
		e.WriteString(f.AcctCode)
		e.WriteString(f.Time)
		e.WriteString(f.Symbol)
		e.WriteString(f.SecType)
		e.WriteString(f.Exchange)
		e.WriteString(f.Side)
	}
	return nil
}

type ReqContractDetails struct {
	ReqID    int
	Contract *Contract
}

func (r *ReqContractDetails) Tag() OutTag    { return OutReqContractData }
func (r *ReqContractDetails) RequestID() int { return NoValidID }

func (r *ReqContractDetails) Encode(e *Encoder, sv int) error {
	c := orZero(r.Contract)
	if err := firstErr(
		unsupported(sv, FeatureContractDetails, ""),
		require(sv, FeatureSecIDType, c.SecIDType != "" || c.SecID != "", r.ReqID,
			"  It does not support secIdType and secId parameters."),
		require(sv, FeatureTradingClass, c.TradingClass != "", r.ReqID,
			"  It does not support tradingClass parameter in reqContractDetails."),
	); err != nil {
		return err
	}

	header(e, r.Tag(), 7)
	if Supports(sv, FeatureContractDataChain) {
		e.WriteInt(r.ReqID)
	}
	if Supports(sv, FeatureContractConID) {
		e.WriteInt(c.ConID)
	}
	e.WriteString(c.Symbol)
	e.WriteString(c.SecType)
	e.WriteString(c.Expiry)
	e.WriteFloat(c.Strike)
	e.WriteString(c.Right)
	if Supports(sv, FeatureMultiplier) {
		e.WriteString(c.Multiplier)
	}
	e.WriteString(c.Exchange)
	e.WriteString(c.Currency)
	e.WriteString(c.LocalSymbol)
	if Supports(sv, FeatureTradingClass) {
		e.WriteString(c.TradingClass)
	}
	if Supports(sv, FeatureIncludeExpired) {
		e.WriteBool(c.IncludeExpired)
	}
	if Supports(sv, FeatureSecIDType) {
		e.WriteString(c.SecIDType)
		e.WriteString(c.SecID)
	}
	return nil
}

type ReqPositions struct{}

func (r *ReqPositions) Tag() OutTag    { return OutReqPositions }
func (r *ReqPositions) RequestID() int { return NoValidID }
func (r *ReqPositions) Encode(e *Encoder, sv int) error {
	if err := unsupported(sv, FeatureAcctSummary, "  It does not support position requests."); err != nil {
		return err
	}
	header(e, r.Tag(), 1)
	return nil
}

type CancelPositions struct{}

func (r *CancelPositions) Tag() OutTag    { return OutCancelPositions }
func (r *CancelPositions) RequestID() int { return NoValidID }
func (r *CancelPositions) Encode(e *Encoder, sv int) error {
	if err := unsupported(sv, FeatureAcctSummary, "  It does not support position cancellation."); err != nil {
		return err
	}
	header(e, r.Tag(), 1)
	return nil
}

// ReqAccountSummary subscribes to summary tags for a group of accounts.
// Group is usually "All"; Tags is a comma separated list such as
// "NetLiquidation,BuyingPower".
type ReqAccountSummary struct {
	ReqID int
	Group string
	Tags  string
}

func (r *ReqAccountSummary) Tag() OutTag    { return OutReqAccountSummary }
func (r *ReqAccountSummary) RequestID() int { return NoValidID }
func (r *ReqAccountSummary) Encode(e *Encoder, sv int) error {
	if err := unsupported(sv, FeatureAcctSummary, "  It does not support account summary requests."); err != nil {
		return err
	}
	idOnly(e, r.Tag(), r.ReqID)
	e.WriteString(r.Group)
	e.WriteString(r.Tags)
	return nil
}

type CancelAccountSummary struct{ ReqID int }

func (r *CancelAccountSummary) Tag() OutTag    { return OutCancelAccountSummary }
func (r *CancelAccountSummary) RequestID() int { return NoValidID }
func (r *CancelAccountSummary) Encode(e *Encoder, sv int) error {
	if err := unsupported(sv, FeatureAcctSummary, "  It does not support account summary cancellation."); err != nil {
		return err
	}
	idOnly(e, r.Tag(), r.ReqID)
	return nil
}
