package main

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"

	"github.com/trufnetwork/tznode-dns/lib/provision/awsengine"
)

func sessionClients(region, profile string) (awsengine.Clients, string, error) {
	opts := session.Options{
		Profile:           profile,
		SharedConfigState: session.SharedConfigEnable,
	}
	if region != "" {
		opts.Config.Region = aws.String(region)
	}
	sess, err := session.NewSessionWithOptions(opts)
	if err != nil {
		return awsengine.Clients{}, "", err
	}
	return awsengine.NewClients(sess), aws.StringValue(sess.Config.Region), nil
}
