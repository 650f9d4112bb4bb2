// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	goio "io"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Encoder defines encoders; e.g. gob or json
type Encoder interface {
	Encode(e interface{}) error
}

// Decoder defines decoders; e.g. gob or json
type Decoder interface {
	Decode(e interface{}) error
}

// GetEncoder returns a new encoder
func GetEncoder(w goio.Writer, enctype string) Encoder {
	if enctype == "json" {
		return json.NewEncoder(w)
	}
	return gob.NewEncoder(w)
}

// GetDecoder returns a new decoder
func GetDecoder(r goio.Reader, enctype string) Decoder {
	if enctype == "json" {
		return json.NewDecoder(r)
	}
	return gob.NewDecoder(r)
}

// prepareRestart loads a previously saved temperature field into U as the
// initial guess, when enabled and not suppressed by OnlyLoadDesign. A
// missing file is reported and skipped; a corrupt file is an error.
func (o *Domain) prepareRestart() (err error) {
	if !o.Sim.Restart.Enabled || o.Sim.Restart.OnlyLoadDesign {
		return
	}
	fn := o.Sim.Restart.RestartFileVec
	if fn == "" {
		return
	}
	if _, serr := os.Stat(fn); serr != nil {
		if Global.Root {
			io.Pf("File: %s NOT FOUND\n", fn)
		}
		return
	}
	err = o.ReadRestartFile(fn)
	if err != nil {
		return
	}
	if Global.Root {
		io.Pf("Restarting from solution: %s\n", fn)
	}
	return
}

// ReadRestartFile loads a checkpointed temperature field into U
func (o *Domain) ReadRestartFile(filename string) (err error) {
	var v []float64
	err = o.readVec(filename, &v)
	if err != nil {
		return
	}
	if len(v) != o.Grid.Nnodes {
		return chk.Err("checkpoint <%s> has %d values but the grid has %d nodes", filename, len(v), o.Grid.Nnodes)
	}
	o.U = v
	return
}

// WriteRestartFiles saves the temperature field to one of two alternating
// checkpoint files so that an interrupted write always leaves the other
// file complete
func (o *Domain) WriteRestartFiles() (err error) {
	if !o.Sim.Restart.Enabled {
		return
	}
	o.flip = !o.flip
	fn := o.fn0
	if o.flip {
		fn = o.fn1
	}
	return o.saveVec(fn, o.U)
}

// saveVec encodes one vector into filename
func (o *Domain) saveVec(filename string, v []float64) (err error) {
	var buf bytes.Buffer
	enc := GetEncoder(&buf, o.Sim.Data.Encoder)
	err = enc.Encode(v)
	if err != nil {
		return chk.Err("cannot encode vector into <%s>\n%v", filename, err)
	}
	fil, err := os.Create(filename)
	if err != nil {
		return
	}
	defer func() {
		if cerr := fil.Close(); err == nil {
			err = cerr
		}
	}()
	_, err = fil.Write(buf.Bytes())
	return
}

// readVec decodes one vector from filename
func (o *Domain) readVec(filename string, v *[]float64) (err error) {
	fil, err := os.Open(filename)
	if err != nil {
		return
	}
	defer func() {
		if cerr := fil.Close(); err == nil {
			err = cerr
		}
	}()
	dec := GetDecoder(fil, o.Sim.Data.Encoder)
	err = dec.Decode(v)
	if err != nil {
		return chk.Err("cannot decode vector from <%s>\n%v", filename, err)
	}
	return
}
