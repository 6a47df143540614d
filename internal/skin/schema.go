/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package skin

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// sceneSchema describes the accepted shape of a scene file. It only checks
// structure (known keys and value kinds); semantic checks happen in
// normalize and Build.
const sceneSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "name": {"type": "string"},
    "width": {"type": "integer"},
    "height": {"type": "integer"},
    "background": {"$ref": "#/definitions/value"},
    "colorfile": {"type": "string"},
    "colors": {"type": "object", "additionalProperties": {"$ref": "#/definitions/value"}},
    "fonts": {"type": "array", "items": {"$ref": "#/definitions/font"}},
    "flags": {"type": "object", "additionalProperties": {"type": "boolean"}},
    "animations": {"type": "array", "items": {"$ref": "#/definitions/animation"}},
    "labels": {"type": "array", "items": {"$ref": "#/definitions/label"}}
  },
  "definitions": {
    "value": {"type": ["string", "number"]},
    "condition": {"type": ["string", "boolean"]},
    "font": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "name": {"type": "string"},
        "family": {"type": "string"},
        "file": {"type": "string"},
        "size": {"type": "number"},
        "style": {"type": "string"},
        "color": {"$ref": "#/definitions/value"},
        "shadow": {"$ref": "#/definitions/value"},
        "linespacing": {"type": "number"},
        "aspect": {"type": "number"}
      }
    },
    "animation": {
      "type": "object",
      "additionalProperties": false,
      "required": ["type", "effect"],
      "properties": {
        "type": {"type": "string"},
        "effect": {"type": "string"},
        "start": {"$ref": "#/definitions/value"},
        "end": {"$ref": "#/definitions/value"},
        "center": {"$ref": "#/definitions/value"},
        "time": {"type": "integer", "minimum": 0},
        "delay": {"type": "integer", "minimum": 0},
        "tween": {"type": "string"},
        "easing": {"type": "string"},
        "condition": {"$ref": "#/definitions/condition"},
        "reversible": {"type": "boolean"},
        "pulse": {"type": "boolean"},
        "loop": {"type": "boolean"}
      }
    },
    "label": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "id": {"type": "integer"},
        "name": {"type": "string"},
        "label": {"$ref": "#/definitions/value"},
        "posx": {"type": "number"},
        "posy": {"type": "number"},
        "width": {"type": "number"},
        "height": {"type": "number"},
        "font": {"type": "string"},
        "textcolor": {"$ref": "#/definitions/value"},
        "shadowcolor": {"$ref": "#/definitions/value"},
        "align": {"type": "string"},
        "aligny": {"type": "string"},
        "wrapmultiline": {"type": "boolean"},
        "scroll": {"type": "boolean"},
        "scrollspeed": {"type": "integer"},
        "scrollsuffix": {"type": "string"},
        "angle": {"type": "number"},
        "visible": {"$ref": "#/definitions/condition"},
        "animations": {"type": "array", "items": {"$ref": "#/definitions/animation"}}
      }
    }
  }
}`

var sceneSchemaLoader = gojsonschema.NewStringLoader(sceneSchema)

// Validate checks the raw scene document against the scene schema and
// reports every mismatch. A document that is not valid YAML yields a single
// error at the root.
func Validate(data []byte, file string) []Error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return []Error{{File: file, Msg: err.Error()}}
	}
	if doc == nil {
		return nil
	}
	res, err := gojsonschema.Validate(sceneSchemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		// Non-string map keys cannot be represented as JSON.
		return []Error{{File: file, Msg: fmt.Sprintf("schema check: %v", err)}}
	}
	if res.Valid() {
		return nil
	}
	errs := make([]Error, 0, len(res.Errors()))
	for _, re := range res.Errors() {
		path := fieldPath(re.Field())
		msg := re.Description()
		if re.Type() == "additional_property_not_allowed" {
			if prop, ok := re.Details()["property"].(string); ok {
				path = joinPath(path, prop)
				msg = "unknown key"
			}
		}
		errs = append(errs, Error{File: file, Path: path, Msg: msg})
	}
	return errs
}

// fieldPath turns "labels.0.animations.1" into "labels[0].animations[1]".
func fieldPath(field string) string {
	if field == "" || field == "(root)" {
		return ""
	}
	var b strings.Builder
	for i, part := range strings.Split(field, ".") {
		if _, err := strconv.Atoi(part); err == nil {
			b.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

func joinPath(base, key string) string {
	if base == "" {
		return key
	}
	return base + "." + key
}
