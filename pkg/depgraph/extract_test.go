package depgraph

import (
	"reflect"
	"testing"
)

func TestExtractSpecifiers_ESImports(t *testing.T) {
	src := []byte(`
import React from 'react';
import { useState, useEffect } from "react-hooks";
import * as path from './path';
import './side-effect';
`)

	got := extractSpecifiers(src)
	want := []string{"react", "react-hooks", "./path", "./side-effect"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extractSpecifiers() = %v, want %v", got, want)
	}
}

func TestExtractSpecifiers_ExportFrom(t *testing.T) {
	src := []byte(`
export { helper } from './helpers';
export * from "./types";
`)

	got := extractSpecifiers(src)
	want := []string{"./helpers", "./types"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extractSpecifiers() = %v, want %v", got, want)
	}
}

func TestExtractSpecifiers_Require(t *testing.T) {
	src := []byte(`
const fs = require('fs');
const local = require("./local");
const spaced = require( './spaced' );
`)

	got := extractSpecifiers(src)
	want := []string{"fs", "./local", "./spaced"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extractSpecifiers() = %v, want %v", got, want)
	}
}

func TestExtractSpecifiers_DynamicImport(t *testing.T) {
	src := []byte(`
async function load() {
	const mod = await import('./lazy');
	return mod;
}
`)

	got := extractSpecifiers(src)
	want := []string{"./lazy"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extractSpecifiers() = %v, want %v", got, want)
	}
}

func TestExtractSpecifiers_DeduplicatesRepeatedSpecifier(t *testing.T) {
	src := []byte(`
import a from './dup';
const b = require('./dup');
`)

	got := extractSpecifiers(src)
	want := []string{"./dup"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extractSpecifiers() = %v, want %v", got, want)
	}
}

func TestExtractSpecifiers_NoImports(t *testing.T) {
	src := []byte(`const x = 42;\nfunction importantFunc() { return x; }`)

	if got := extractSpecifiers(src); got != nil {
		t.Errorf("extractSpecifiers() = %v, want nil", got)
	}
}

func TestExtractSpecifiers_ScopedPackage(t *testing.T) {
	src := []byte(`import { api } from '@company/api-client/rest';`)

	got := extractSpecifiers(src)
	want := []string{"@company/api-client/rest"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extractSpecifiers() = %v, want %v", got, want)
	}
}
