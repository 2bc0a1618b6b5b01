package vpc

// IngressRule is a readable rendering of one ingress permission entry.
type IngressRule struct {
	Protocol  string // TCP, UDP, ICMP, All, or number
	PortRange string // "80", "80-443", "All"
	Sources   []string
}
