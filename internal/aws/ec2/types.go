package ec2

// Instance is the projection of a described EC2 instance the console shows.
type Instance struct {
	InstanceID    string
	State         string
	PublicDNSName string
	PublicIP      string
}

// StateChange reports the transition returned by a start or stop call.
type StateChange struct {
	Previous string
	Current  string
}
