package db

import (
	"strconv"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/pkg/errors"

	"github.com/esc0rtd3w/performous-tools/constants"
	"github.com/esc0rtd3w/performous-tools/model"
)

// Client looks up song metadata by title. The zero value is not usable; call
// New.
type Client struct {
	svc   *dynamodb.DynamoDB
	table string
}

func New(endpoint, table string) (*Client, error) {
	if endpoint == "" {
		endpoint = constants.DefaultMetadataEndpoint
	}
	if table == "" {
		table = constants.DefaultMetadataTable
	}
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String("localhost"),
		Endpoint: aws.String(endpoint),
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating DynamoDB session")
	}
	return &Client{svc: dynamodb.New(sess), table: table}, nil
}

// Lookup fetches metadata for up to 10 titles in one batch. Titles without a
// record are simply absent from the result.
func (c *Client) Lookup(titles []string) (map[string]model.SongMetadata, error) {
	if len(titles) > 10 {
		return nil, errors.Errorf("can look up at most 10 titles at once, got %d", len(titles))
	}

	res := make(map[string]model.SongMetadata)
	if len(titles) == 0 {
		return res, nil
	}

	var keys []map[string]*dynamodb.AttributeValue
	for _, title := range titles {
		keys = append(keys, map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(title)},
		})
	}

	input := &dynamodb.BatchGetItemInput{
		RequestItems: map[string]*dynamodb.KeysAndAttributes{
			c.table: {Keys: keys},
		},
	}
	dbres, err := c.svc.BatchGetItem(input)
	if err != nil {
		return nil, errors.Wrap(err, "fetching song metadata")
	}

	for _, v := range dbres.Responses[c.table] {
		var s model.SongMetadata
		s.Title = *v["PK"].S
		if v["Artist"] != nil && v["Artist"].S != nil {
			s.Artist = *v["Artist"].S
		}
		if v["Language"] != nil && v["Language"].S != nil {
			s.Language = *v["Language"].S
		}
		if v["Year"] != nil && v["Year"].N != nil {
			year, _ := strconv.ParseUint(*v["Year"].N, 10, 32)
			s.Year = uint(year)
		}
		res[s.Title] = s
	}

	return res, nil
}
