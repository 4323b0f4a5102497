// Copyright 2019 Michal Derkacz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package svd implements the subset of the CMSIS-SVD format needed to
// describe the register maps of simple peripherals.
package svd

import (
	"encoding/xml"
	"io"
	"strconv"
)

type Uint uint

func (u *Uint) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var s string
	if err := d.DecodeElement(&s, &start); err != nil {
		return err
	}
	v, err := strconv.ParseUint(s, 0, 0)
	*u = Uint(v)
	return err
}

func (u Uint) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return e.EncodeElement(strconv.FormatUint(uint64(u), 10), start)
}

// Uint64 is used for addresses and register values, it is encoded in
// hexadecimal.
type Uint64 uint64

func (u *Uint64) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var s string
	if err := d.DecodeElement(&s, &start); err != nil {
		return err
	}
	v, err := strconv.ParseUint(s, 0, 64)
	*u = Uint64(v)
	return err
}

func (u Uint64) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return e.EncodeElement("0x"+strconv.FormatUint(uint64(u), 16), start)
}

type Device struct {
	XMLName         xml.Name `xml:"device"`
	Vendor          *string  `xml:"vendor"`
	Name            string   `xml:"name"`
	Version         string   `xml:"version"`
	Description     string   `xml:"description"`
	AddressUnitBits Uint     `xml:"addressUnitBits"`
	Width           Uint     `xml:"width"`
	*RegisterPropertiesGroup
	Peripherals []*Peripheral `xml:"peripherals>peripheral"`
}

type RegisterPropertiesGroup struct {
	Size       *Uint   `xml:"size"`
	Access     *string `xml:"access"`
	Protection *string `xml:"protection"`
	ResetValue *Uint64 `xml:"resetValue"`
	ResetMask  *Uint64 `xml:"resetMask"`
}

type Peripheral struct {
	DerivedFrom *string `xml:"derivedFrom,attr"`
	*DimElementGroup
	Name        string  `xml:"name"`
	Version     *string `xml:"version"`
	Description *string `xml:"description"`
	GroupName   *string `xml:"groupName"`
	BaseAddress Uint64  `xml:"baseAddress"`
	*RegisterPropertiesGroup
	AddressBlock []*AddressBlock `xml:"addressBlock"`
	Registers    []*Register     `xml:"registers>register"`
	Clusters     []*Cluster      `xml:"registers>cluster"`
}

type DimElementGroup struct {
	Dim          Uint    `xml:"dim,omitempty"`
	DimIncrement Uint64  `xml:"dimIncrement,omitempty"`
	DimIndex     *string `xml:"dimIndex"`
	DimName      *string `xml:"dimName"`
}

type AddressBlock struct {
	Offset     Uint64  `xml:"offset"`
	Size       Uint64  `xml:"size"`
	Usage      string  `xml:"usage"`
	Protection *string `xml:"protection"`
}

type Register struct {
	DerivedFrom *string `xml:"derivedFrom,attr"`
	DimElementGroup
	Name           string  `xml:"name"`
	DisplayName    *string `xml:"displayName"`
	Description    *string `xml:"description"`
	AlternateGroup *string `xml:"alternateGroup"`
	AddressOffset  Uint64  `xml:"addressOffset"`
	*RegisterPropertiesGroup
	DataType *string  `xml:"dataType"`
	Fields   []*Field `xml:"fields>field"`
}

type Field struct {
	DerivedFrom *string `xml:"derivedFrom,attr"`
	Name        string  `xml:"name"`
	Description *string `xml:"description"`
	*BitRangeOffsetWidth
	*BitRangeLSBMSB
	BitRangePattern *string `xml:"bitRange"`
	Access          *string `xml:"access"`
}

type BitRangeOffsetWidth struct {
	BitOffset Uint  `xml:"bitOffset"`
	BitWidth  *Uint `xml:"bitWidth"`
}

type BitRangeLSBMSB struct {
	LSB Uint `xml:"lsb"`
	MSB Uint `xml:"msb"`
}

type Cluster struct {
	DerivedFrom *string `xml:"derivedFrom,attr"`
	DimElementGroup
	Name          string  `xml:"name"`
	Description   *string `xml:"description"`
	AddressOffset Uint64  `xml:"addressOffset"`
	*RegisterPropertiesGroup
	Registers []*Register `xml:"register"`
	Clusters  []*Cluster  `xml:"cluster"`
}

// Decode reads an SVD device description from r.
func Decode(r io.Reader) (*Device, error) {
	dev := new(Device)
	if err := xml.NewDecoder(r).Decode(dev); err != nil {
		return nil, err
	}
	return dev, nil
}

// Encode writes dev to w as an indented SVD document.
func Encode(w io.Writer, dev *Device) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	e := xml.NewEncoder(w)
	e.Indent("", "  ")
	if err := e.Encode(dev); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Str returns a pointer to s, for the optional elements.
func Str(s string) *string { return &s }
