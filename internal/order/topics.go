package order

const (
	TopicTrxExecuted = "trx.executed"
)

// Partition key = ref_id, supaya event satu transaksi maintain urutan.
func PartitionKey(refID string) []byte { return []byte(refID) }
