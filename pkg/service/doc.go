// Package service provides the high-level orchestration of hzsync.
//
// RateService ties the lower-level components together:
//
//	request -> mode.Resolve (fresh catalog) -> apply.Applier
//	        -> on failure: cadence.Driver with click/pulse actions
//	        -> session.State records the software session
//
// A software session is started when the hardware could not be put at the
// requested rate (or software was requested explicitly). It keeps running
// until Reset, Shutdown or, for timed sessions, expiry of its duration
// timer. Reset also handles sessions recorded by an earlier process that did
// not exit cleanly, restoring any brightness it captured.
//
// Example usage:
//
//	svc, err := service.NewRateService(service.Config{
//		Backend: backend,
//		State:   state,
//	})
//	out, err := svc.SetRate(ctx, service.SetRequest{DisplayID: "HDMI-1", TargetRate: 40})
//	defer svc.Shutdown()
package service
