package sqlinline

const QInsertUpload = `--sql c2459b7d-aaad-47cd-bf4d-66367828d114
insert into uploads(
  id,
  storage_key,
  mime,
  bytes,
  width,
  height,
  created_at
) values (
  $1::uuid,
  $2::text,
  $3::text,
  $4::bigint,
  $5::int,
  $6::int,
  now()
) returning id;
`

const QSelectUploadByID = `--sql 9755e25c-8865-4dac-84e3-fec88145b951
select id, storage_key, mime, bytes, width, height, created_at
from uploads
where id = $1::uuid
limit 1;
`

const QSelectUploadsByIDs = `--sql 44797469-4220-49dc-93e4-5792ffa91c02
select id, storage_key, mime, bytes, width, height, created_at
from uploads
where id = any($1::uuid[]);
`
