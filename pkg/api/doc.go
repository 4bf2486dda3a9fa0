// Package api defines the request and response messages of the saakhtemaan
// RPC services.
//
// Messages are plain Go structs encoded as JSON. Request fields carry
// `validate` tags that are checked once, at the RPC boundary, before a
// service method runs; services can therefore trust the shape of every
// request they receive.
//
// Monetary amounts are whole Toman, at most 10^13 per request field so
// that allocation sums stay exact in float64. Fields ending in Label are display
// strings with Persian digits, ready for the dashboard.
package api
