package awsengine

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/acm"
	"github.com/aws/aws-sdk-go/service/acm/acmiface"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/trufnetwork/tznode-dns/lib/deferred"
	"github.com/trufnetwork/tznode-dns/lib/provision"
)

type certificate struct {
	arn  *deferred.Output[string]
	dvos *deferred.Output[[]provision.DomainValidationOption]
}

func (c certificate) Arn() *deferred.Output[string] { return c.arn }

func (c certificate) DomainValidationOptions() *deferred.Output[[]provision.DomainValidationOption] {
	return c.dvos
}

// Certificate returns a handle on an existing ACM certificate. Its validation options
// are read once with DescribeCertificate; a challenge ACM has not published yet is an
// error (ErrValidationOptionsPending), not something to poll for.
// In dry-run mode the validation options stay unknown.
func (e *Engine) Certificate(arn string, opts ...provision.ResourceOption) provision.Certificate {
	options := provision.NewResourceOptions(opts...)
	c, err := e.clients(options.Provider)
	if err != nil {
		return certificate{arn: deferred.Known(arn), dvos: fail[[]provision.DomainValidationOption](e, err)}
	}

	if e.dryRun {
		pending, _ := deferred.New[[]provision.DomainValidationOption]()
		return certificate{arn: deferred.Known(arn), dvos: pending}
	}

	dvos := spawn(e, func(ctx context.Context) ([]provision.DomainValidationOption, error) {
		detail, err := describeCertificate(ctx, c.ACM, arn)
		if err != nil {
			return nil, err
		}
		return validationOptions(detail)
	})
	return certificate{arn: deferred.Known(arn), dvos: dvos}
}

// RegisterCertificateValidation waits for the certificate to be issued once every
// validation record FQDN is known. CertificateArn resolves when ACM reports ISSUED.
func (e *Engine) RegisterCertificateValidation(name string, args provision.CertificateValidationArgs, opts ...provision.ResourceOption) *provision.CertificateValidation {
	options := provision.NewResourceOptions(opts...)
	v := &provision.CertificateValidation{Name: name, Args: args}

	if err := e.Add(provision.Declaration{Kind: provision.KindCertificateValidation, Name: name, Options: options, Validation: v}); err != nil {
		v.CertificateArn = fail[string](e, err)
		return v
	}
	c, err := e.clients(options.Provider)
	if err != nil {
		v.CertificateArn = fail[string](e, err)
		return v
	}

	if e.dryRun {
		e.logger.Info("would wait for certificate validation", zap.String("resource", name))
		v.CertificateArn, _ = deferred.New[string]()
		return v
	}

	fqdns := deferred.Bind(e.dependencies(options.DependsOn), func(struct{}) *deferred.Output[[]string] {
		return args.ValidationRecordFqdns
	})
	v.CertificateArn = deferred.Bind(fqdns, func(fqdns []string) *deferred.Output[string] {
		return deferred.Bind(args.CertificateArn, func(arn string) *deferred.Output[string] {
			return spawn(e, func(ctx context.Context) (string, error) {
				e.logger.Info("waiting for certificate validation",
					zap.String("resource", name), zap.String("certificateArn", arn), zap.Strings("fqdns", fqdns))
				return waitValidated(ctx, c.ACM, arn, fqdns)
			})
		})
	})
	return v
}

func describeCertificate(ctx context.Context, api acmiface.ACMAPI, arn string) (*acm.CertificateDetail, error) {
	out, err := api.DescribeCertificateWithContext(ctx, &acm.DescribeCertificateInput{CertificateArn: aws.String(arn)})
	if err != nil {
		return nil, err
	}
	if out.Certificate == nil {
		return nil, fmt.Errorf("describe certificate %s: empty response", arn)
	}
	return out.Certificate, nil
}

func validationOptions(detail *acm.CertificateDetail) ([]provision.DomainValidationOption, error) {
	dvos := make([]provision.DomainValidationOption, 0, len(detail.DomainValidationOptions))
	for _, dv := range detail.DomainValidationOptions {
		if dv.ResourceRecord == nil {
			return nil, fmt.Errorf("%w: %s", provision.ErrValidationOptionsPending, aws.StringValue(dv.DomainName))
		}
		dvos = append(dvos, provision.DomainValidationOption{
			DomainName:          aws.StringValue(dv.DomainName),
			ResourceRecordName:  aws.StringValue(dv.ResourceRecord.Name),
			ResourceRecordValue: aws.StringValue(dv.ResourceRecord.Value),
			ResourceRecordType:  aws.StringValue(dv.ResourceRecord.Type),
		})
	}
	return dvos, nil
}

func waitValidated(ctx context.Context, api acmiface.ACMAPI, arn string, fqdns []string) (string, error) {
	detail, err := describeCertificate(ctx, api, arn)
	if err != nil {
		return "", err
	}
	dvos, err := validationOptions(detail)
	if err != nil {
		return "", err
	}

	canonical := func(s string) string { return strings.ToLower(strings.TrimSuffix(s, ".")) }
	published := lo.SliceToMap(fqdns, func(f string) (string, struct{}) { return canonical(f), struct{}{} })
	for _, dvo := range dvos {
		if _, ok := published[canonical(dvo.ResourceRecordName)]; !ok {
			return "", fmt.Errorf("%w %s (%s)", provision.ErrValidationRecordMissing, dvo.DomainName, dvo.ResourceRecordName)
		}
	}

	if err := api.WaitUntilCertificateValidatedWithContext(ctx, &acm.DescribeCertificateInput{CertificateArn: aws.String(arn)}); err != nil {
		return "", err
	}
	return arn, nil
}
