package h5

import (
	"fmt"

	"gonum.org/v1/hdf5"
)

type ParameterHDF5 struct {
	Name  [STRLEN]byte `hdf5:"name"`
	Value float64      `hdf5:"value"`
}

type RunInfoHDF5 struct {
	RunID    [STRLEN]byte `hdf5:"run_id"`
	NEvents  int64        `hdf5:"n_events"`
	Duration int64        `hdf5:"duration_ms"`
}

type BinHDF5 struct {
	Low   float64 `hdf5:"low"`
	High  float64 `hdf5:"high"`
	Count int64   `hdf5:"count"`
}

type OutflowHDF5 struct {
	Name      [STRLEN]byte `hdf5:"name"`
	Underflow int64        `hdf5:"underflow"`
	Overflow  int64        `hdf5:"overflow"`
	Entries   int64        `hdf5:"entries"`
}

type EventHDF5 struct {
	Event       int32   `hdf5:"evt_number"`
	Sum         float64 `hdf5:"sum"`
	Added       float64 `hdf5:"added"`
	AvPedestal  float64 `hdf5:"av_pedestal"`
	MedPedestal float64 `hdf5:"med_pedestal"`
	NPulses     int32   `hdf5:"n_pulses"`
}

type PulseHDF5 struct {
	Event     int32   `hdf5:"evt_number"`
	Slot      int32   `hdf5:"slot"`
	Amplitude float64 `hdf5:"amplitude"`
}

type GaussFitHDF5 struct {
	Name      [STRLEN]byte `hdf5:"name"`
	Low       float64      `hdf5:"low"`
	High      float64      `hdf5:"high"`
	Amplitude float64      `hdf5:"amplitude"`
	Mean      float64      `hdf5:"mean"`
	Sigma     float64      `hdf5:"sigma"`
	Chi2      float64      `hdf5:"chi2"`
	NDF       int32        `hdf5:"ndf"`
	Converged int32        `hdf5:"converged"`
}

const STRLEN = 40

func convertToHdf5String(s string) [STRLEN]byte {
	var byteArray [STRLEN]byte
	copy(byteArray[:], s)
	return byteArray
}

func openFile(fname string) (*hdf5.File, error) {
	f, err := hdf5.CreateFile(fname, hdf5.F_ACC_TRUNC)
	if err != nil {
		return nil, &ErrOpenFile{Filename: fname, Err: err}
	}
	return f, nil
}

func createGroup(file *hdf5.File, groupName string) (*hdf5.Group, error) {
	g, err := file.CreateGroup(groupName)
	if err != nil {
		return nil, &ErrCreateGroup{GroupName: groupName, Err: err}
	}
	return g, nil
}

func newPropList(chunks []uint, compressionLevel int) (*hdf5.PropList, error) {
	plist, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		return nil, err
	}
	if err := plist.SetChunk(chunks); err != nil {
		plist.Close()
		return nil, err
	}
	if err := plist.SetDeflate(compressionLevel); err != nil {
		plist.Close()
		return nil, err
	}
	return plist, nil
}

func create2dArray(group *hdf5.Group, name string, nSamples int, compressionLevel int) (*hdf5.Dataset, error) {
	dims := []uint{0, uint(nSamples)}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDims := []uint{uint(unlimitedDims), uint(nSamples)}
	chunks := []uint{1, uint(nSamples)}

	fileSpace, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	defer fileSpace.Close()

	plist, err := newPropList(chunks, compressionLevel)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	defer plist.Close()

	dset, err := group.CreateDatasetWith(name, hdf5.T_NATIVE_DOUBLE, fileSpace, plist)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	return dset, nil
}

func createTable(group *hdf5.Group, name string, datatype interface{}, compressionLevel int) (*hdf5.Dataset, error) {
	dims := []uint{0}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDims := []uint{uint(unlimitedDims)}
	fileSpace, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	defer fileSpace.Close()

	plist, err := newPropList([]uint{32768}, compressionLevel)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	defer plist.Close()

	// create the memory data type
	dtype, err := hdf5.NewDatatypeFromValue(datatype)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	defer dtype.Close()

	dset, err := group.CreateDatasetWith(name, dtype, fileSpace, plist)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	return dset, nil
}

// writeArrayToTable appends data after the first offset rows of dataset.
func writeArrayToTable[T any](dataset *hdf5.Dataset, data []T, offset int) error {
	if len(data) == 0 {
		return nil
	}
	length := uint(len(data))
	dataspace, err := hdf5.CreateSimpleDataspace([]uint{length}, nil)
	if err != nil {
		return err
	}
	defer dataspace.Close()

	if err := dataset.Resize([]uint{uint(offset) + length}); err != nil {
		return err
	}
	filespace := dataset.Space()
	defer filespace.Close()

	if err := filespace.SelectHyperslab([]uint{uint(offset)}, nil, []uint{length}, nil); err != nil {
		return err
	}
	return dataset.WriteSubset(&data, dataspace, filespace)
}

func writeRow(dataset *hdf5.Dataset, data []float64, row int) error {
	nSamples := uint(len(data))
	if err := dataset.Resize([]uint{uint(row) + 1, nSamples}); err != nil {
		return err
	}
	filespace := dataset.Space()
	defer filespace.Close()

	count := []uint{1, nSamples}
	if err := filespace.SelectHyperslab([]uint{uint(row), 0}, nil, count, nil); err != nil {
		return err
	}

	dataspace, err := hdf5.CreateSimpleDataspace(count, nil)
	if err != nil {
		return err
	}
	defer dataspace.Close()

	if err := dataset.WriteSubset(&data, dataspace, filespace); err != nil {
		return fmt.Errorf("error writing row %d: %w", row, err)
	}
	return nil
}
