package protocol

import "strconv"

// OutTag identifies an outbound message.
type OutTag int

// Outbound message tags.
const (
	OutReqMktData                 OutTag = 1
	OutCancelMktData              OutTag = 2
	OutPlaceOrder                 OutTag = 3
	OutCancelOrder                OutTag = 4
	OutReqOpenOrders              OutTag = 5
	OutReqAccountData             OutTag = 6
	OutReqExecutions              OutTag = 7
	OutReqIDs                     OutTag = 8
	OutReqContractData            OutTag = 9
	OutReqMktDepth                OutTag = 10
	OutCancelMktDepth             OutTag = 11
	OutReqNewsBulletins           OutTag = 12
	OutCancelNewsBulletins        OutTag = 13
	OutSetServerLogLevel          OutTag = 14
	OutReqAutoOpenOrders          OutTag = 15
	OutReqAllOpenOrders           OutTag = 16
	OutReqManagedAccts            OutTag = 17
	OutReqFA                      OutTag = 18
	OutReplaceFA                  OutTag = 19
	OutReqHistoricalData          OutTag = 20
	OutExerciseOptions            OutTag = 21
	OutReqScannerSubscription     OutTag = 22
	OutCancelScannerSubscription  OutTag = 23
	OutReqScannerParameters       OutTag = 24
	OutCancelHistoricalData       OutTag = 25
	OutReqCurrentTime             OutTag = 49
	OutReqRealTimeBars            OutTag = 50
	OutCancelRealTimeBars         OutTag = 51
	OutReqFundamentalData         OutTag = 52
	OutCancelFundamentalData      OutTag = 53
	OutReqCalcImpliedVolat        OutTag = 54
	OutReqCalcOptionPrice         OutTag = 55
	OutCancelCalcImpliedVolat     OutTag = 56
	OutCancelCalcOptionPrice      OutTag = 57
	OutReqGlobalCancel            OutTag = 58
	OutReqMarketDataType          OutTag = 59
	OutReqPositions               OutTag = 61
	OutReqAccountSummary          OutTag = 62
	OutCancelAccountSummary       OutTag = 63
	OutCancelPositions            OutTag = 64
	OutVerifyRequest              OutTag = 65
	OutVerifyMessage              OutTag = 66
	OutQueryDisplayGroups         OutTag = 67
	OutSubscribeToGroupEvents     OutTag = 68
	OutUpdateDisplayGroup         OutTag = 69
	OutUnsubscribeFromGroupEvents OutTag = 70
	OutStartAPI                   OutTag = 71
)

var outTagNames = map[OutTag]string{
	OutReqMktData:                 "REQ_MKT_DATA",
	OutCancelMktData:              "CANCEL_MKT_DATA",
	OutPlaceOrder:                 "PLACE_ORDER",
	OutCancelOrder:                "CANCEL_ORDER",
	OutReqOpenOrders:              "REQ_OPEN_ORDERS",
	OutReqAccountData:             "REQ_ACCOUNT_DATA",
	OutReqExecutions:              "REQ_EXECUTIONS",
	OutReqIDs:                     "REQ_IDS",
	OutReqContractData:            "REQ_CONTRACT_DATA",
	OutReqMktDepth:                "REQ_MKT_DEPTH",
	OutCancelMktDepth:             "CANCEL_MKT_DEPTH",
	OutReqNewsBulletins:           "REQ_NEWS_BULLETINS",
	OutCancelNewsBulletins:        "CANCEL_NEWS_BULLETINS",
	OutSetServerLogLevel:          "SET_SERVER_LOGLEVEL",
	OutReqAutoOpenOrders:          "REQ_AUTO_OPEN_ORDERS",
	OutReqAllOpenOrders:           "REQ_ALL_OPEN_ORDERS",
	OutReqManagedAccts:            "REQ_MANAGED_ACCTS",
	OutReqFA:                      "REQ_FA",
	OutReplaceFA:                  "REPLACE_FA",
	OutReqHistoricalData:          "REQ_HISTORICAL_DATA",
	OutExerciseOptions:            "EXERCISE_OPTIONS",
	OutReqScannerSubscription:     "REQ_SCANNER_SUBSCRIPTION",
	OutCancelScannerSubscription:  "CANCEL_SCANNER_SUBSCRIPTION",
	OutReqScannerParameters:       "REQ_SCANNER_PARAMETERS",
	OutCancelHistoricalData:       "CANCEL_HISTORICAL_DATA",
	OutReqCurrentTime:             "REQ_CURRENT_TIME",
	OutReqRealTimeBars:            "REQ_REAL_TIME_BARS",
	OutCancelRealTimeBars:         "CANCEL_REAL_TIME_BARS",
	OutReqFundamentalData:         "REQ_FUNDAMENTAL_DATA",
	OutCancelFundamentalData:      "CANCEL_FUNDAMENTAL_DATA",
	OutReqCalcImpliedVolat:        "REQ_CALC_IMPLIED_VOLAT",
	OutReqCalcOptionPrice:         "REQ_CALC_OPTION_PRICE",
	OutCancelCalcImpliedVolat:     "CANCEL_CALC_IMPLIED_VOLAT",
	OutCancelCalcOptionPrice:      "CANCEL_CALC_OPTION_PRICE",
	OutReqGlobalCancel:            "REQ_GLOBAL_CANCEL",
	OutReqMarketDataType:          "REQ_MARKET_DATA_TYPE",
	OutReqPositions:               "REQ_POSITIONS",
	OutReqAccountSummary:          "REQ_ACCOUNT_SUMMARY",
	OutCancelAccountSummary:       "CANCEL_ACCOUNT_SUMMARY",
	OutCancelPositions:            "CANCEL_POSITIONS",
	OutVerifyRequest:              "VERIFY_REQUEST",
	OutVerifyMessage:              "VERIFY_MESSAGE",
	OutQueryDisplayGroups:         "QUERY_DISPLAY_GROUPS",
	OutSubscribeToGroupEvents:     "SUBSCRIBE_TO_GROUP_EVENTS",
	OutUpdateDisplayGroup:         "UPDATE_DISPLAY_GROUP",
	OutUnsubscribeFromGroupEvents: "UNSUBSCRIBE_FROM_GROUP_EVENTS",
	OutStartAPI:                   "START_API",
}

// String returns the wire name of the tag.
func (t OutTag) String() string {
	if s, ok := outTagNames[t]; ok {
		return s
	}
	return "OUT_" + strconv.Itoa(int(t))
}

// InTag identifies an inbound message.
type InTag int

// Inbound message tags.
const (
	InTickPrice              InTag = 1
	InTickSize               InTag = 2
	InOrderStatus            InTag = 3
	InErrMsg                 InTag = 4
	InOpenOrder              InTag = 5
	InAcctValue              InTag = 6
	InPortfolioValue         InTag = 7
	InAcctUpdateTime         InTag = 8
	InNextValidID            InTag = 9
	InContractData           InTag = 10
	InExecutionData          InTag = 11
	InMarketDepth            InTag = 12
	InMarketDepthL2          InTag = 13
	InNewsBulletins          InTag = 14
	InManagedAccts           InTag = 15
	InReceiveFA              InTag = 16
	InHistoricalData         InTag = 17
	InBondContractData       InTag = 18
	InScannerParameters      InTag = 19
	InScannerData            InTag = 20
	InTickOptionComputation  InTag = 21
	InTickGeneric            InTag = 45
	InTickString             InTag = 46
	InTickEFP                InTag = 47
	InCurrentTime            InTag = 49
	InRealTimeBars           InTag = 50
	InFundamentalData        InTag = 51
	InContractDataEnd        InTag = 52
	InOpenOrderEnd           InTag = 53
	InAcctDownloadEnd        InTag = 54
	InExecutionDataEnd       InTag = 55
	InDeltaNeutralValidation InTag = 56
	InTickSnapshotEnd        InTag = 57
	InMarketDataType         InTag = 58
	InCommissionReport       InTag = 59
	InPosition               InTag = 61
	InPositionEnd            InTag = 62
	InAccountSummary         InTag = 63
	InAccountSummaryEnd      InTag = 64
	InVerifyMessageAPI       InTag = 65
	InVerifyCompleted        InTag = 66
	InDisplayGroupList       InTag = 67
	InDisplayGroupUpdated    InTag = 68
)

var inTagNames = map[InTag]string{
	InTickPrice:              "TICK_PRICE",
	InTickSize:               "TICK_SIZE",
	InOrderStatus:            "ORDER_STATUS",
	InErrMsg:                 "ERR_MSG",
	InOpenOrder:              "OPEN_ORDER",
	InAcctValue:              "ACCT_VALUE",
	InPortfolioValue:         "PORTFOLIO_VALUE",
	InAcctUpdateTime:         "ACCT_UPDATE_TIME",
	InNextValidID:            "NEXT_VALID_ID",
	InContractData:           "CONTRACT_DATA",
	InExecutionData:          "EXECUTION_DATA",
	InMarketDepth:            "MARKET_DEPTH",
	InMarketDepthL2:          "MARKET_DEPTH_L2",
	InNewsBulletins:          "NEWS_BULLETINS",
	InManagedAccts:           "MANAGED_ACCTS",
	InReceiveFA:              "RECEIVE_FA",
	InHistoricalData:         "HISTORICAL_DATA",
	InBondContractData:       "BOND_CONTRACT_DATA",
	InScannerParameters:      "SCANNER_PARAMETERS",
	InScannerData:            "SCANNER_DATA",
	InTickOptionComputation:  "TICK_OPTION_COMPUTATION",
	InTickGeneric:            "TICK_GENERIC",
	InTickString:             "TICK_STRING",
	InTickEFP:                "TICK_EFP",
	InCurrentTime:            "CURRENT_TIME",
	InRealTimeBars:           "REAL_TIME_BARS",
	InFundamentalData:        "FUNDAMENTAL_DATA",
	InContractDataEnd:        "CONTRACT_DATA_END",
	InOpenOrderEnd:           "OPEN_ORDER_END",
	InAcctDownloadEnd:        "ACCT_DOWNLOAD_END",
	InExecutionDataEnd:       "EXECUTION_DATA_END",
	InDeltaNeutralValidation: "DELTA_NEUTRAL_VALIDATION",
	InTickSnapshotEnd:        "TICK_SNAPSHOT_END",
	InMarketDataType:         "MARKET_DATA_TYPE",
	InCommissionReport:       "COMMISSION_REPORT",
	InPosition:               "POSITION",
	InPositionEnd:            "POSITION_END",
	InAccountSummary:         "ACCOUNT_SUMMARY",
	InAccountSummaryEnd:      "ACCOUNT_SUMMARY_END",
	InVerifyMessageAPI:       "VERIFY_MESSAGE_API",
	InVerifyCompleted:        "VERIFY_COMPLETED",
	InDisplayGroupList:       "DISPLAY_GROUP_LIST",
	InDisplayGroupUpdated:    "DISPLAY_GROUP_UPDATED",
}

// String returns the wire name of the tag.
func (t InTag) String() string {
	if s, ok := inTagNames[t]; ok {
		return s
	}
	return "IN_" + strconv.Itoa(int(t))
}

// Known reports whether the tag has a decode routine.
func (t InTag) Known() bool {
	_, ok := inTagNames[t]
	return ok
}

// FA data types for RequestFA and ReplaceFA.
const (
	FAGroups   = 1
	FAProfiles = 2
	FAAliases  = 3
)

// Tick types that carry an implied size on tick price messages.
const (
	TickBidSize     = 0
	TickBid         = 1
	TickAsk         = 2
	TickAskSize     = 3
	TickLast        = 4
	TickLastSize    = 5
	TickModelOption = 13
)

// NoValidID is the request id carried by errors not tied to a request.
const NoValidID = -1
