// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package exc

import (
	"sort"
	"sync"
)

// Reporter is used to accumulate and report diagnostics while compiling a set
// of files. Parsing itself never stops on a diagnostic; the reporter decides
// which codes the caller should treat as fatal.
type Reporter interface {
	// Report adds the given record to the set. If this method returns an
	// exception then that exception is considered fatal.
	Report(Exception) Exception
	// Reported returns the set of accumulated exceptions.
	Reported() []Exception
}

// NewReporter returns a concurrent-safe implementation of Reporter. Codes in
// nonFatal are recorded but never returned from Report.
func NewReporter(nonFatal []string) Reporter {
	nf := make(map[string]bool, len(defaultNonFatal)+len(nonFatal))
	for k := range defaultNonFatal {
		nf[k] = true
	}
	for _, k := range nonFatal {
		nf[k] = true
	}
	return &reporterLock{
		Reporter: &reporter{
			nonFatal: nf,
		},
		lock: &sync.Mutex{},
	}
}

type reporter struct {
	reported []Exception
	nonFatal map[string]bool
}

func (r *reporter) Report(e Exception) Exception {
	r.reported = append(r.reported, e)
	if r.nonFatal[e.Code()] {
		return nil
	}
	return e
}

func (r *reporter) Reported() []Exception {
	out := make([]Exception, len(r.reported))
	copy(out, r.reported)
	return out
}

type reporterLock struct {
	Reporter
	lock sync.Locker
}

func (r *reporterLock) Report(e Exception) Exception {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.Reporter.Report(e)
}

func (r *reporterLock) Reported() []Exception {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.Reporter.Reported()
}

// Sort orders exceptions by URI and then by start offset. Reports arrive from
// concurrent parses in no particular order.
func Sort(es []Exception) {
	sort.SliceStable(es, func(i, j int) bool {
		a, b := es[i].Location(), es[j].Location()
		if a.URI != b.URI {
			return a.URI < b.URI
		}
		return a.Start < b.Start
	})
}
