package dataset_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonardohn/wisard"
	"github.com/leonardohn/wisard/bitvec"
	"github.com/leonardohn/wisard/dataset"
)

const hotColdCSV = `1,1,1,0,0,0,0,0,cold
1,1,1,1,0,0,0,0,cold
0,0,0,0,1,1,1,1,hot
0,0,0,0,0,1,1,1,hot
`

func TestFromCSV_Parses(t *testing.T) {
	ds, err := dataset.FromCSV(strings.NewReader(hotColdCSV), 8)
	require.NoError(t, err)
	require.Equal(t, 4, ds.Len())

	first := ds.At(0)
	assert.Equal(t, "cold", first.Label)
	assert.Equal(t, []bool{true, true, true, false, false, false, false, false}, first.Bits.Bools())

	assert.Equal(t, []string{"cold", "hot"}, ds.Labels())
}

func TestFromCSV_RejectsBadCells(t *testing.T) {
	_, err := dataset.FromCSV(strings.NewReader("1,2,0,cold\n"), 3)
	assert.Error(t, err)
}

func TestFromCSV_RejectsShortRecords(t *testing.T) {
	_, err := dataset.FromCSV(strings.NewReader("1,0,cold\n"), 8)
	assert.Error(t, err)
}

func TestFromCSV_Empty(t *testing.T) {
	ds, err := dataset.FromCSV(strings.NewReader(""), 8)
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
}

func TestSplit_Partition(t *testing.T) {
	ds := dataset.New()
	for i := 0; i < 10; i++ {
		bits := make([]bool, 4)
		bits[i%4] = true
		ds.Add(dataset.Sample{Bits: bitvec.FromBools(bits), Label: "l"})
	}

	train, test := ds.Split(0.7, 11)
	assert.Equal(t, 7, train.Len())
	assert.Equal(t, 3, test.Len())

	// Same seed, same split.
	train2, _ := ds.Split(0.7, 11)
	for i := 0; i < train.Len(); i++ {
		assert.True(t, bitvec.Equal(train.At(i).Bits, train2.At(i).Bits))
	}
}

func TestSplit_InvalidFraction(t *testing.T) {
	ds := dataset.New()
	assert.Panics(t, func() { ds.Split(1.5, 0) })
}

func TestTrainEvaluate_HotCold(t *testing.T) {
	ds, err := dataset.FromCSV(strings.NewReader(hotColdCSV), 8)
	require.NoError(t, err)

	m, err := wisard.New(8, 2, ds.Labels(), wisard.WithSeed(42))
	require.NoError(t, err)
	require.NoError(t, dataset.Train(m, ds))

	accuracy, err := dataset.Evaluate(m, ds)
	require.NoError(t, err)
	assert.Equal(t, 1.0, accuracy)

	stats := m.Stats()
	assert.Equal(t, uint64(4), stats.Fits)
	assert.Equal(t, uint64(2), stats.PerLabel["cold"])
	assert.Equal(t, uint64(2), stats.PerLabel["hot"])
}

func TestTrain_UnknownLabelStops(t *testing.T) {
	ds, err := dataset.FromCSV(strings.NewReader(hotColdCSV), 8)
	require.NoError(t, err)

	m, err := wisard.New(8, 2, []string{"cold"}, wisard.WithSeed(42))
	require.NoError(t, err)
	assert.ErrorIs(t, dataset.Train(m, ds), wisard.ErrUnknownLabel)
}

func TestEvaluate_EmptyDataset(t *testing.T) {
	m, err := wisard.New(8, 2, []string{"a"})
	require.NoError(t, err)

	accuracy, err := dataset.Evaluate(m, dataset.New())
	require.NoError(t, err)
	assert.Zero(t, accuracy)
}
