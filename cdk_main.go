package main

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"

	"github.com/trufnetwork/tznode-dns/config"
	"github.com/trufnetwork/tznode-dns/config/targets"
	"github.com/trufnetwork/tznode-dns/stacks"
)

func main() {
	defer jsii.Close()

	app := awscdk.NewApp(nil)

	settings, err := config.LoadDNSSettings()
	if err != nil {
		panic(err)
	}

	targetsFile := config.TargetsFile(app)
	cfg, err := targets.LoadConfig(targetsFile)
	if err != nil {
		panic(fmt.Sprintf("failed to load targets: %v", err))
	}

	stacks.DnsStack(app, config.WithStackSuffix(app, "TZNode-DNS"), &stacks.DnsStackProps{
		StackProps: awscdk.StackProps{
			Env:                   config.CdkEnv(),
			CrossRegionReferences: jsii.Bool(true),
			Description:           jsii.String("TZNode-DNS publishes alias records and certificates for the deployment targets of " + targetsFile),
		},
		Settings:        settings,
		Targets:         targets.GetTargetsForStack(app, cfg),
		EdgeCertificate: config.EdgeCertificate(app),
	})

	app.Synth(nil)
}
