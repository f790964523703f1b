/*
 *   Copyright 2024 Still Fourth <code@stillfourth.dev>
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 */
package transport

import (
	"fmt"
	"net/http"
)

type ErrBase struct {
	Code int
	Body []byte
}

func (e ErrBase) Error() string {
	return fmt.Sprintf("%s: %s", http.StatusText(e.Code), e.Body)
}

type ErrBadRequest struct{ ErrBase }

type ErrUnauthorized struct{ ErrBase }

type ErrForbidden struct{ ErrBase }

type ErrNotFound struct{ ErrBase }

type ErrConflict struct{ ErrBase }

type ErrTooManyRequests struct{ ErrBase }

type ErrInternal struct{ ErrBase }

// ErrStatusCode covers any remaining non-2xx status without a type of its
// own.
type ErrStatusCode struct{ ErrBase }
