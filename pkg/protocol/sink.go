package protocol

// Sink receives decoded inbound events. All methods are called from the
// single reader goroutine, in wire order.
type Sink interface {
	TickPrice(TickPrice)
	TickSize(TickSize)
	TickOptionComputation(TickOptionComputation)
	TickGeneric(TickGeneric)
	TickString(TickString)
	TickEFP(TickEFP)
	TickSnapshotEnd(TickSnapshotEnd)
	MarketDataType(MarketDataType)

	OrderStatus(OrderStatus)
	OpenOrder(OpenOrder)
	OpenOrderEnd()
	NextValidID(NextValidID)

	AccountValue(AccountValue)
	PortfolioValue(PortfolioValue)
	AccountUpdateTime(AccountUpdateTime)
	AccountDownloadEnd(AccountDownloadEnd)
	ManagedAccounts(ManagedAccounts)
	Position(Position)
	PositionEnd()
	AccountSummary(AccountSummary)
	AccountSummaryEnd(AccountSummaryEnd)

	ContractData(ContractData)
	BondContractData(ContractData)
	ContractDataEnd(ContractDataEnd)

	ExecutionData(ExecutionData)
	ExecutionDataEnd(ExecutionDataEnd)
	CommissionReport(CommissionReport)

	MarketDepth(MarketDepth)
	MarketDepthL2(MarketDepth)
	NewsBulletin(NewsBulletin)
	ReceiveFA(ReceiveFA)

	HistoricalData(HistoricalBar)
	HistoricalDataEnd(HistoricalDataEnd)
	RealTimeBar(RealTimeBar)

	ScannerParameters(ScannerParameters)
	ScannerData(ScannerData)
	ScannerDataEnd(ScannerDataEnd)

	CurrentTime(CurrentTime)
	FundamentalData(FundamentalData)
	DeltaNeutralValidation(DeltaNeutralValidation)

	VerifyMessageAPI(VerifyMessageAPI)
	VerifyCompleted(VerifyCompleted)
	DisplayGroupList(DisplayGroupList)
	DisplayGroupUpdated(DisplayGroupUpdated)

	// Error reports a server notice or a client-side failure.
	Error(ErrorMessage)
	// ConnectionError reports a transport or decode failure.
	ConnectionError(error)
	// ConnectionClosed is called once when the session ends.
	ConnectionClosed()
}

// NopSink ignores every event. Embed it to implement only the methods
// you care about.
type NopSink struct{}

var _ Sink = NopSink{}

func (NopSink) TickPrice(TickPrice)                           {}
func (NopSink) TickSize(TickSize)                             {}
func (NopSink) TickOptionComputation(TickOptionComputation)   {}
func (NopSink) TickGeneric(TickGeneric)                       {}
func (NopSink) TickString(TickString)                         {}
func (NopSink) TickEFP(TickEFP)                               {}
func (NopSink) TickSnapshotEnd(TickSnapshotEnd)               {}
func (NopSink) MarketDataType(MarketDataType)                 {}
func (NopSink) OrderStatus(OrderStatus)                       {}
func (NopSink) OpenOrder(OpenOrder)                           {}
func (NopSink) OpenOrderEnd()                                 {}
func (NopSink) NextValidID(NextValidID)                       {}
func (NopSink) AccountValue(AccountValue)                     {}
func (NopSink) PortfolioValue(PortfolioValue)                 {}
func (NopSink) AccountUpdateTime(AccountUpdateTime)           {}
func (NopSink) AccountDownloadEnd(AccountDownloadEnd)         {}
func (NopSink) ManagedAccounts(ManagedAccounts)               {}
func (NopSink) Position(Position)                             {}
func (NopSink) PositionEnd()                                  {}
func (NopSink) AccountSummary(AccountSummary)                 {}
func (NopSink) AccountSummaryEnd(AccountSummaryEnd)           {}
func (NopSink) ContractData(ContractData)                     {}
func (NopSink) BondContractData(ContractData)                 {}
func (NopSink) ContractDataEnd(ContractDataEnd)               {}
func (NopSink) ExecutionData(ExecutionData)                   {}
func (NopSink) ExecutionDataEnd(ExecutionDataEnd)             {}
func (NopSink) CommissionReport(CommissionReport)             {}
func (NopSink) MarketDepth(MarketDepth)                       {}
func (NopSink) MarketDepthL2(MarketDepth)                     {}
func (NopSink) NewsBulletin(NewsBulletin)                     {}
func (NopSink) ReceiveFA(ReceiveFA)                           {}
func (NopSink) HistoricalData(HistoricalBar)                  {}
func (NopSink) HistoricalDataEnd(HistoricalDataEnd)           {}
func (NopSink) RealTimeBar(RealTimeBar)                       {}
func (NopSink) ScannerParameters(ScannerParameters)           {}
func (NopSink) ScannerData(ScannerData)                       {}
func (NopSink) ScannerDataEnd(ScannerDataEnd)                 {}
func (NopSink) CurrentTime(CurrentTime)                       {}
func (NopSink) FundamentalData(FundamentalData)               {}
func (NopSink) DeltaNeutralValidation(DeltaNeutralValidation) {}
func (NopSink) VerifyMessageAPI(VerifyMessageAPI)             {}
func (NopSink) VerifyCompleted(VerifyCompleted)               {}
func (NopSink) DisplayGroupList(DisplayGroupList)             {}
func (NopSink) DisplayGroupUpdated(DisplayGroupUpdated)       {}
func (NopSink) Error(ErrorMessage)                            {}
func (NopSink) ConnectionError(error)                         {}
func (NopSink) ConnectionClosed()                             {}
