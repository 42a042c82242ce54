package config

import "os"

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	ParallelCompare bool
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("PRIMELAB_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	// Comparison runs execute algorithms sequentially unless opted in.
	parallel := os.Getenv("PRIMELAB_PARALLEL_COMPARE") == "true"

	return Server{
		Addr:            addr,
		ParallelCompare: parallel,
	}
}
