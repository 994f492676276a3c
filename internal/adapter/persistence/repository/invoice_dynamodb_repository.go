package repository

import (
	"context"
	"errors"
	"time"

	"supportforge/internal/domain/entities"
	"supportforge/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const (
	defaultInvoicesTableName       = "invoices"
	defaultInvoiceNumbersTableName = "invoice_numbers"
	invoicesNumberIndex            = "number-index"

	conditionalCheckFailedCode = "ConditionalCheckFailed"
)

type invoiceLineItem struct {
	Description string `dynamodbav:"description"`
	Quantity    int    `dynamodbav:"quantity"`
	UnitPrice   string `dynamodbav:"unit_price"`
}

type invoiceItem struct {
	ID        string            `dynamodbav:"id"`
	Number    string            `dynamodbav:"number"`
	ClientID  string            `dynamodbav:"client_id"`
	Amount    string            `dynamodbav:"amount"`
	Status    string            `dynamodbav:"status"`
	DueDate   string            `dynamodbav:"due_date"`
	PaidDate  string            `dynamodbav:"paid_date,omitempty"`
	Items     []invoiceLineItem `dynamodbav:"items"`
	CreatedAt string            `dynamodbav:"created_at"`
	UpdatedAt string            `dynamodbav:"updated_at"`
}

// InvoiceDynamoRepository persists Invoice entities in DynamoDB.
//
// Table requirements:
//   - invoices: PK id (string), GSI number-index (PK: number)
//   - invoice_numbers: PK number (string); reservation items written in the
//     same transaction as the invoice, which is what makes invoice numbers
//     unique under concurrent creations
//
// Line items are embedded in the invoice item, so invoice+items creation and
// full item replacement are single-item atomic writes.

type InvoiceDynamoRepository struct {
	ddb          *dynamodb.Client
	tableName    string
	numbersTable string
}

var _ interfaces.IInvoiceRepository = (*InvoiceDynamoRepository)(nil)

func NewInvoiceDynamoRepository(ddb *dynamodb.Client) *InvoiceDynamoRepository {
	return &InvoiceDynamoRepository{
		ddb:          ddb,
		tableName:    getenvDefault("INVOICES_TABLE", defaultInvoicesTableName),
		numbersTable: getenvDefault("INVOICE_NUMBERS_TABLE", defaultInvoiceNumbersTableName),
	}
}

func (r *InvoiceDynamoRepository) Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error) {
	av, err := attributevalue.MarshalMap(toInvoiceItem(inv))
	if err != nil {
		return entities.Invoice{}, err
	}

	reservation := map[string]types.AttributeValue{
		"number":     &types.AttributeValueMemberS{Value: inv.Number},
		"invoice_id": &types.AttributeValueMemberS{Value: inv.ID},
		"created_at": &types.AttributeValueMemberS{Value: formatTime(inv.CreatedAt)},
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(r.numbersTable),
					Item:                reservation,
					ConditionExpression: aws.String("attribute_not_exists(#number)"),
					ExpressionAttributeNames: map[string]string{
						"#number": "number",
					},
				},
			},
			{
				Put: &types.Put{
					TableName:           aws.String(r.tableName),
					Item:                av,
					ConditionExpression: aws.String("attribute_not_exists(#id)"),
					ExpressionAttributeNames: map[string]string{
						"#id": "id",
					},
				},
			},
		},
	})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) && reservationConditionFailed(tce) {
			return entities.Invoice{}, interfaces.ErrDuplicateInvoiceNumber
		}
		return entities.Invoice{}, err
	}
	return inv, nil
}

// reservationConditionFailed reports whether the number reservation put (the
// first transact item) was the one rejected by its condition.
func reservationConditionFailed(tce *types.TransactionCanceledException) bool {
	if len(tce.CancellationReasons) == 0 {
		return false
	}
	reason := tce.CancellationReasons[0]
	return reason.Code != nil && *reason.Code == conditionalCheckFailedCode
}

func (r *InvoiceDynamoRepository) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Invoice{}, err
	}
	if len(out.Item) == 0 {
		return entities.Invoice{}, nil
	}

	var it invoiceItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it), nil
}

func (r *InvoiceDynamoRepository) GetByNumber(ctx context.Context, number string) (entities.Invoice, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(invoicesNumberIndex),
		KeyConditionExpression: aws.String("#number = :number"),
		ExpressionAttributeNames: map[string]string{
			"#number": "number",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":number": &types.AttributeValueMemberS{Value: number},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Invoice{}, err
	}
	if len(out.Items) == 0 {
		return entities.Invoice{}, nil
	}

	var it invoiceItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it), nil
}

func (r *InvoiceDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.InvoiceStatus, paidDate *time.Time) (entities.Invoice, error) {
	now := formatTime(time.Now().UTC())

	expr := "SET #status = :status, #updated_at = :updated_at"
	names := map[string]string{
		"#id":         "id",
		"#status":     "status",
		"#updated_at": "updated_at",
		"#paid_date":  "paid_date",
	}
	values := map[string]types.AttributeValue{
		":status":     &types.AttributeValueMemberS{Value: string(status)},
		":updated_at": &types.AttributeValueMemberS{Value: now},
	}
	if paidDate != nil {
		expr += ", #paid_date = :paid_date"
		values[":paid_date"] = &types.AttributeValueMemberS{Value: formatTime(*paidDate)}
	} else {
		expr += " REMOVE #paid_date"
	}

	return r.update(ctx, id, expr, names, values)
}

func (r *InvoiceDynamoRepository) ReplaceItems(ctx context.Context, id string, items []entities.InvoiceItem, amount decimal.Decimal) (entities.Invoice, error) {
	itemsAV, err := attributevalue.Marshal(toLineItems(items))
	if err != nil {
		return entities.Invoice{}, err
	}

	expr := "SET #items = :items, #amount = :amount, #updated_at = :updated_at"
	names := map[string]string{
		"#id":         "id",
		"#items":      "items",
		"#amount":     "amount",
		"#updated_at": "updated_at",
	}
	values := map[string]types.AttributeValue{
		":items":      itemsAV,
		":amount":     &types.AttributeValueMemberS{Value: amount.String()},
		":updated_at": &types.AttributeValueMemberS{Value: formatTime(time.Now().UTC())},
	}

	return r.update(ctx, id, expr, names, values)
}

func (r *InvoiceDynamoRepository) update(ctx context.Context, id, expr string, names map[string]string, values map[string]types.AttributeValue) (entities.Invoice, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Invoice{}, nil
		}
		return entities.Invoice{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Invoice{}, nil
	}

	var it invoiceItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it), nil
}

func (r *InvoiceDynamoRepository) List(ctx context.Context, filter entities.InvoiceFilter) (entities.InvoicePage, error) {
	in := &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
		Limit:     aws.Int32(filter.Limit),
	}
	expr, names, values := buildInvoiceFilter(filter)
	if expr != "" {
		in.FilterExpression = aws.String(expr)
		in.ExpressionAttributeNames = names
		in.ExpressionAttributeValues = values
	}
	if filter.Cursor != "" {
		in.ExclusiveStartKey = map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: filter.Cursor},
		}
	}

	out, err := r.ddb.Scan(ctx, in)
	if err != nil {
		return entities.InvoicePage{}, err
	}

	page := entities.InvoicePage{Invoices: make([]entities.Invoice, 0, len(out.Items))}
	for _, raw := range out.Items {
		var it invoiceItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return entities.InvoicePage{}, err
		}
		page.Invoices = append(page.Invoices, fromInvoiceItem(it))
	}
	if last, ok := out.LastEvaluatedKey["id"]; ok {
		if s, ok := last.(*types.AttributeValueMemberS); ok {
			page.NextCursor = s.Value
		}
	}
	return page, nil
}

func (r *InvoiceDynamoRepository) SumAmountByStatus(ctx context.Context, status entities.InvoiceStatus) (decimal.Decimal, error) {
	total := decimal.Zero
	var startKey map[string]types.AttributeValue

	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:            aws.String(r.tableName),
			FilterExpression:     aws.String("#status = :status"),
			ProjectionExpression: aws.String("#amount"),
			ExpressionAttributeNames: map[string]string{
				"#status": "status",
				"#amount": "amount",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":status": &types.AttributeValueMemberS{Value: string(status)},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return decimal.Zero, err
		}
		for _, raw := range out.Items {
			if s, ok := raw["amount"].(*types.AttributeValueMemberS); ok {
				amount, err := decimal.NewFromString(s.Value)
				if err != nil {
					continue
				}
				total = total.Add(amount)
			}
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return total, nil
}

func buildInvoiceFilter(filter entities.InvoiceFilter) (string, map[string]string, map[string]types.AttributeValue) {
	expr := ""
	names := map[string]string{}
	values := map[string]types.AttributeValue{}

	if filter.Status != nil {
		expr = "#status = :status"
		names["#status"] = "status"
		values[":status"] = &types.AttributeValueMemberS{Value: string(*filter.Status)}
	}
	if filter.ClientID != "" {
		if expr != "" {
			expr += " AND "
		}
		expr += "#client_id = :client_id"
		names["#client_id"] = "client_id"
		values[":client_id"] = &types.AttributeValueMemberS{Value: filter.ClientID}
	}
	return expr, names, values
}

func toLineItems(items []entities.InvoiceItem) []invoiceLineItem {
	out := make([]invoiceLineItem, 0, len(items))
	for _, it := range items {
		out = append(out, invoiceLineItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice.String(),
		})
	}
	return out
}

func fromLineItems(items []invoiceLineItem) []entities.InvoiceItem {
	out := make([]entities.InvoiceItem, 0, len(items))
	for _, it := range items {
		price, _ := decimal.NewFromString(it.UnitPrice)
		out = append(out, entities.InvoiceItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   price,
		})
	}
	return out
}

func toInvoiceItem(inv entities.Invoice) invoiceItem {
	it := invoiceItem{
		ID:        inv.ID,
		Number:    inv.Number,
		ClientID:  inv.ClientID,
		Amount:    inv.Amount.String(),
		Status:    string(inv.Status),
		DueDate:   formatTime(inv.DueDate),
		Items:     toLineItems(inv.Items),
		CreatedAt: formatTime(inv.CreatedAt),
		UpdatedAt: formatTime(inv.UpdatedAt),
	}
	if inv.PaidDate != nil {
		it.PaidDate = formatTime(*inv.PaidDate)
	}
	return it
}

func fromInvoiceItem(it invoiceItem) entities.Invoice {
	amount, _ := decimal.NewFromString(it.Amount)
	inv := entities.Invoice{
		ID:        it.ID,
		Number:    it.Number,
		ClientID:  it.ClientID,
		Amount:    amount,
		Status:    entities.InvoiceStatus(it.Status),
		DueDate:   parseTime(it.DueDate),
		Items:     fromLineItems(it.Items),
		CreatedAt: parseTime(it.CreatedAt),
		UpdatedAt: parseTime(it.UpdatedAt),
	}
	if it.PaidDate != "" {
		paid := parseTime(it.PaidDate)
		inv.PaidDate = &paid
	}
	return inv
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}
