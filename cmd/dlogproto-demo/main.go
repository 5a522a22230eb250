// Command dlogproto-demo drives a Pedersen commit/decommit round over an
// in-memory pipe and a Sigma-DH proof round in process, either from the
// command line or repeatedly behind an HTTP surface.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/allsmog/dlogproto/pkg/group"
	"github.com/allsmog/dlogproto/pkg/measurement"
)

func main() {
	var (
		curveName  = flag.String("curve", "secp256k1", "Group to use (secp256k1|ristretto255)")
		soundness  = flag.Int("soundness", 80, "Sigma-DH soundness parameter t (bits)")
		iterations = flag.Int("iterations", 1, "Number of rounds to run in CLI mode")
		serve      = flag.Bool("serve", false, "Serve an HTTP surface instead of running once")
		addr       = flag.String("addr", ":8090", "Server address, used when -serve is set")
		rateLimit  = flag.Int("rate-limit", 60, "Max /run requests per minute per client, used when -serve is set")
	)
	flag.Parse()

	g, err := group.FromName(*curveName)
	if err != nil {
		log.Fatalf("unsupported curve %q: %v", *curveName, err)
	}
	sampler := group.CryptoRandSampler{}

	if *serve {
		log.Printf("dlogproto-demo serving %s, rate limit %d/min, group %s", *addr, *rateLimit, g.Name())
		handler := newServer(g, *soundness, sampler, *rateLimit)
		if err := http.ListenAndServe(*addr, handler); err != nil {
			log.Fatalf("server failed: %v", err)
		}
		return
	}

	m := measurement.New(subtaskNames, *iterations)
	correlationID := uuid.NewString()

	var last roundResult
	for iter := 0; iter < *iterations; iter++ {
		result, err := runRound(g, *soundness, sampler, m, iter, correlationID)
		if err != nil {
			log.Fatalf("round %d failed: %v", iter, err)
		}
		last = result
	}

	if err := m.Finish("dlogproto-demo", []string{g.Name(), correlationID}); err != nil {
		log.Printf("warning: failed to write measurement report: %v", err)
	}

	fmt.Printf("correlation_id=%s curve=%s committed_value=%s decommit_accepted=%t sigma_dh_verified=%t\n",
		last.CorrelationID, last.Curve, last.CommittedValue, last.DecommitAccepted, last.SigmaDHVerified)
}
