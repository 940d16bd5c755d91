package layout

// Rent parameters. A slot is rent exempt when it holds two years of rent for
// its data plus the per-account overhead.
const (
	AccountStorageOverhead  = 128
	LamportsPerByteYear     = 3480
	ExemptionThresholdYears = 2
)

// MinimumBalance returns the deposit, in lamports, required to keep a slot of
// dataLen bytes allocated.
func MinimumBalance(dataLen int) uint64 {
	return uint64(AccountStorageOverhead+dataLen) * LamportsPerByteYear * ExemptionThresholdYears
}

// TweetDeposit is the deposit charged for one tweet slot.
const TweetDeposit uint64 = (AccountStorageOverhead + TweetSize) * LamportsPerByteYear * ExemptionThresholdYears
