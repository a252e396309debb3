package config

import (
	"context"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rpupo63/ambitious-journal-backend/errs"
	"github.com/rs/zerolog/log"
)

// LoadParameters overlays the SecureString parameters stored under prefix in
// AWS SSM Parameter Store onto config. Settings already present in the
// environment win. It returns how many keys were added.
func LoadParameters(ctx context.Context, config map[string]string, prefix string) (int, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(GetString(config, "AWS_REGION", "us-east-1")),
	)
	if err != nil {
		return 0, errs.NewConfigError("aws", err)
	}
	return overlayParameters(ctx, ssm.NewFromConfig(awsCfg), config, prefix)
}

func overlayParameters(ctx context.Context, client ssm.GetParametersByPathAPIClient, config map[string]string, prefix string) (int, error) {
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})

	added := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return added, errs.NewConfigError("ssm:"+prefix, err)
		}
		for _, parameter := range page.Parameters {
			key := path.Base(aws.ToString(parameter.Name))
			if key == "" || key == "." || key == "/" {
				continue
			}
			if GetString(config, key, "") != "" {
				log.Debug().Str("key", key).Msg("Environment overrides SSM parameter")
				continue
			}
			config[key] = aws.ToString(parameter.Value)
			added++
		}
	}
	return added, nil
}
