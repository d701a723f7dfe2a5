package errors

import "sort"

// Registered client error codes.
const (
	AlreadyConnected = 501
	ConnectFail      = 502
	UpdateTWS        = 503
	NotConnected     = 504
	UnknownID        = 505
	UnsupportedVer   = 506
	BadLength        = 507
	BadMessage       = 508
	FailSendReqMkt   = 510
	FailSendCanMkt   = 511
	FailSendOrder    = 512
	FailSendAcct     = 513
	FailSendExec     = 514
	FailSendCOrder   = 515
	FailSendOOrder   = 516
	UnknownContract  = 517

	FailSendReqContract            = 518
	FailSendReqMktDepth            = 519
	FailSendCanMktDepth            = 520
	FailSendServerLogLevel         = 521
	FailSendFARequest              = 522
	FailSendFAReplace              = 523
	FailSendReqScanner             = 524
	FailSendCanScanner             = 525
	FailSendReqScannerParameters   = 526
	FailSendReqHistData            = 527
	FailSendCanHistData            = 528
	FailSendReqRTBars              = 529
	FailSendCanRTBars              = 530
	FailSendReqCurrTime            = 531
	FailSendReqFundData            = 532
	FailSendCanFundData            = 533
	FailSendReqCalcImpliedVolat    = 534
	FailSendReqCalcOptionPrice     = 535
	FailSendCanCalcImpliedVolat    = 536
	FailSendCanCalcOptionPrice     = 537
	FailSendReqGlobalCancel        = 538
	FailSendReqMarketDataType      = 539
	FailSendReqPositions           = 540
	FailSendCanPositions           = 541
	FailSendReqAccountData         = 542
	FailSendCanAccountData         = 543
	FailSendVerifyRequest          = 544
	FailSendVerifyMessage          = 545
	FailSendQueryDisplayGroups     = 546
	FailSendSubscribeToGroupEvents = 547
	FailSendUpdateDisplayGroup     = 548
	FailSendUnsubscribeGroupEvents = 549
	FailSendStartAPI               = 550
)

// ErrorTemplate defines a registered error code.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Suggestion string
}

func sendFailure(msg string) ErrorTemplate {
	return ErrorTemplate{
		Category:   CategorySend,
		Message:    msg,
		Suggestion: "The connection was closed. Reconnect and resubmit the request.",
	}
}

// registry maps error codes to their templates.
var registry = map[int]ErrorTemplate{
	// Connection (501-508)
	AlreadyConnected: {
		Category: CategoryConnection,
		Message:  "Already connected.",
	},
	ConnectFail: {
		Category:   CategoryConnection,
		Message:    "Couldn't connect to TWS.",
		Suggestion: `Confirm that "Enable ActiveX and Socket Clients" is enabled and the port matches the API settings.`,
	},
	UpdateTWS: {
		Category:   CategoryCapability,
		Message:    "The TWS is out of date and must be upgraded.",
		Suggestion: "Upgrade TWS or IB Gateway, or drop the field the server cannot accept.",
	},
	NotConnected:    {Category: CategoryConnection, Message: "Not connected"},
	UnknownID:       {Category: CategoryDecode, Message: "Fatal Error: Unknown message id."},
	UnsupportedVer:  {Category: CategoryConnection, Message: "Unsupported version"},
	BadLength:       {Category: CategoryDecode, Message: "Bad message length"},
	BadMessage:      {Category: CategoryDecode, Message: "Bad message"},
	UnknownContract: {Category: CategoryCapability, Message: "Unknown contract. Verify the contract details supplied."},

	// Send failures (510-550)
	FailSendReqMkt:                 sendFailure("Request Market Data Sending Error - "),
	FailSendCanMkt:                 sendFailure("Cancel Market Data Sending Error - "),
	FailSendOrder:                  sendFailure("Order Sending Error - "),
	FailSendAcct:                   sendFailure("Account Update Request Sending Error -"),
	FailSendExec:                   sendFailure("Request For Executions Sending Error -"),
	FailSendCOrder:                 sendFailure("Cancel Order Sending Error -"),
	FailSendOOrder:                 sendFailure("Request Open Order Sending Error -"),
	FailSendReqContract:            sendFailure("Request Contract Data Sending Error - "),
	FailSendReqMktDepth:            sendFailure("Request Market Depth Sending Error - "),
	FailSendCanMktDepth:            sendFailure("Cancel Market Depth Sending Error - "),
	FailSendServerLogLevel:         sendFailure("Set Server Log Level Sending Error - "),
	FailSendFARequest:              sendFailure("FA Information Request Sending Error - "),
	FailSendFAReplace:              sendFailure("FA Information Replace Sending Error - "),
	FailSendReqScanner:             sendFailure("Request Scanner Subscription Sending Error - "),
	FailSendCanScanner:             sendFailure("Cancel Scanner Subscription Sending Error - "),
	FailSendReqScannerParameters:   sendFailure("Request Scanner Parameter Sending Error - "),
	FailSendReqHistData:            sendFailure("Request Historical Data Sending Error - "),
	FailSendCanHistData:            sendFailure("Request Historical Data Sending Error - "),
	FailSendReqRTBars:              sendFailure("Request Real-time Bar Data Sending Error - "),
	FailSendCanRTBars:              sendFailure("Cancel Real-time Bar Data Sending Error - "),
	FailSendReqCurrTime:            sendFailure("Request Current Time Sending Error - "),
	FailSendReqFundData:            sendFailure("Request Fundamental Data Sending Error - "),
	FailSendCanFundData:            sendFailure("Cancel Fundamental Data Sending Error - "),
	FailSendReqCalcImpliedVolat:    sendFailure("Request Calculate Implied Volatility Sending Error - "),
	FailSendReqCalcOptionPrice:     sendFailure("Request Calculate Option Price Sending Error - "),
	FailSendCanCalcImpliedVolat:    sendFailure("Cancel Calculate Implied Volatility Sending Error - "),
	FailSendCanCalcOptionPrice:     sendFailure("Cancel Calculate Option Price Sending Error - "),
	FailSendReqGlobalCancel:        sendFailure("Request Global Cancel Sending Error - "),
	FailSendReqMarketDataType:      sendFailure("Request Market Data Type Sending Error - "),
	FailSendReqPositions:           sendFailure("Request Positions Sending Error - "),
	FailSendCanPositions:           sendFailure("Cancel Positions Sending Error - "),
	FailSendReqAccountData:         sendFailure("Request Account Data Sending Error - "),
	FailSendCanAccountData:         sendFailure("Cancel Account Data Sending Error - "),
	FailSendVerifyRequest:          sendFailure("Verify Request Sending Error - "),
	FailSendVerifyMessage:          sendFailure("Verify Message Sending Error - "),
	FailSendQueryDisplayGroups:     sendFailure("Query Display Groups Sending Error - "),
	FailSendSubscribeToGroupEvents: sendFailure("Subscribe To Group Events Sending Error - "),
	FailSendUpdateDisplayGroup:     sendFailure("Update Display Group Sending Error - "),
	FailSendUnsubscribeGroupEvents: sendFailure("Unsubscribe From Group Events Sending Error - "),
	FailSendStartAPI:               sendFailure("Start API Sending Error - "),
}

// GetAllCodes returns all registered error codes in ascending order.
func GetAllCodes() []int {
	codes := make([]int, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code int) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// IsClientCode reports whether code lies in the client-side range.
func IsClientCode(code int) bool {
	_, ok := registry[code]
	return ok
}
